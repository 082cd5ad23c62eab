package validation

import (
	"strings"
	"testing"

	"prepwise/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validULID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"

func TestValidateSubmitAnswerRequest(t *testing.T) {
	v := NewValidator()

	t.Run("valid request", func(t *testing.T) {
		errs := v.ValidateSubmitAnswerRequest(validULID, "a thoughtful answer")
		assert.Empty(t, errs)
	})

	t.Run("missing question id", func(t *testing.T) {
		errs := v.ValidateSubmitAnswerRequest("", "answer")
		require.Len(t, errs, 1)
		assert.Equal(t, "questionId", errs[0].Field)
	})

	t.Run("malformed question id", func(t *testing.T) {
		for _, id := range []string{
			"short",
			"01ARZ3NDEKTSV4RRFFQ69G5FA",   // 25 chars
			"01ARZ3NDEKTSV4RRFFQ69G5FAVX", // 27 chars
			"01arz3ndektsv4rrffq69g5fav",  // lowercase
			"01ARZ3NDEKTSV4RRFFQ69G5FAI",  // 'I' excluded from Crockford base32
		} {
			errs := v.ValidateSubmitAnswerRequest(id, "answer")
			require.Len(t, errs, 1, "id %q", id)
			assert.Equal(t, "questionId", errs[0].Field)
		}
	})

	t.Run("missing answer", func(t *testing.T) {
		errs := v.ValidateSubmitAnswerRequest(validULID, "   ")
		require.Len(t, errs, 1)
		assert.Equal(t, "userAnswer", errs[0].Field)
	})

	t.Run("answer too long", func(t *testing.T) {
		errs := v.ValidateSubmitAnswerRequest(validULID, strings.Repeat("a", 10001))
		require.Len(t, errs, 1)
		assert.Equal(t, "userAnswer", errs[0].Field)
	})

	t.Run("both fields invalid", func(t *testing.T) {
		errs := v.ValidateSubmitAnswerRequest("", "")
		assert.Len(t, errs, 2)
	})
}

func TestValidateCommunityQuestionRequest(t *testing.T) {
	v := NewValidator()

	valid := func() *dto.CommunityQuestionRequest {
		return &dto.CommunityQuestionRequest{
			Title:      "How do you estimate a roadmap?",
			Role:       "Product Management",
			Topic:      "Product Execution",
			Difficulty: "medium",
		}
	}

	t.Run("valid request", func(t *testing.T) {
		assert.Empty(t, v.ValidateCommunityQuestionRequest(valid()))
	})

	t.Run("missing title", func(t *testing.T) {
		req := valid()
		req.Title = ""
		errs := v.ValidateCommunityQuestionRequest(req)
		require.Len(t, errs, 1)
		assert.Equal(t, "title", errs[0].Field)
	})

	t.Run("title too long", func(t *testing.T) {
		req := valid()
		req.Title = strings.Repeat("x", 201)
		errs := v.ValidateCommunityQuestionRequest(req)
		require.Len(t, errs, 1)
		assert.Equal(t, "title", errs[0].Field)
	})

	t.Run("missing role and topic", func(t *testing.T) {
		req := valid()
		req.Role = ""
		req.Topic = " "
		errs := v.ValidateCommunityQuestionRequest(req)
		assert.Len(t, errs, 2)
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		req := valid()
		req.Difficulty = "impossible"
		errs := v.ValidateCommunityQuestionRequest(req)
		require.Len(t, errs, 1)
		assert.Equal(t, "difficulty", errs[0].Field)
	})
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, isValidULID(validULID))
	assert.False(t, isValidULID(""))
	assert.False(t, isValidULID("not-a-ulid"))
}
