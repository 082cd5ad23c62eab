package validation

import (
	"regexp"
	"strings"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
)

// Validator provides request validation functionality. Validation failures
// are resolved before any storage or network call is issued.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitAnswerRequest validates an answer submission.
func (v *Validator) ValidateSubmitAnswerRequest(questionID, userAnswer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("questionId"))
	} else if !isValidULID(questionID) {
		errors = append(errors, domain.NewInvalidFormatError("questionId", questionID))
	}

	if strings.TrimSpace(userAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("userAnswer"))
	} else if len(userAnswer) > 10000 {
		errors = append(errors, domain.NewOutOfRangeError("userAnswer", len(userAnswer), 1, 10000))
	}

	return errors
}

// ValidateCommunityQuestionRequest validates a community question proposal.
func (v *Validator) ValidateCommunityQuestionRequest(req *dto.CommunityQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(req.Title) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("title", len(req.Title), 1, 200))
	}

	if strings.TrimSpace(req.Role) == "" {
		errors = append(errors, domain.NewMissingFieldError("role"))
	}

	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	}

	if !domain.IsValidDifficulty(req.Difficulty) {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, Crockford base32 encoded
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
