package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// llmEvaluator implements domain.AnswerEvaluator on top of a langchaingo
// Ollama client.
type llmEvaluator struct {
	llmClient *ollama.LLM
	timeout   time.Duration
}

// NewLLMEvaluator creates a new instance of llmEvaluator
func NewLLMEvaluator(llm *ollama.LLM, timeout time.Duration) domain.AnswerEvaluator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &llmEvaluator{
		llmClient: llm,
		timeout:   timeout,
	}
}

// Evaluate implements domain.AnswerEvaluator
func (e *llmEvaluator) Evaluate(ctx context.Context, question *domain.Question, userAnswer string) (*domain.Feedback, error) {
	l := logger.Get()
	l.Info("Evaluating answer with LLM",
		zap.String("question_id", question.ID),
		zap.String("topic", question.Topic))

	prompt := fmt.Sprintf(`You are an interview coach evaluating a candidate's answer. Respond with ONLY a JSON object in the following format:
{
    "score": 0,
    "summary": "brief overall feedback here",
    "strengths": ["strength 1", "strength 2"],
    "improvements": ["improvement 1", "improvement 2"],
    "suggestions": ["suggestion 1", "suggestion 2"]
}

Question: %s
Question Context: %s
Reference Answer: %s
Candidate's Answer: %s

Rules:
1. score must be an integer between 0 and 100
2. summary must be under 100 words, focusing on key strengths and areas for improvement
3. strengths, improvements and suggestions each list 1 to 3 short bullet points
4. Judge against the reference answer but reward equivalent approaches`,
		question.Title, question.Description, question.OptimalAnswer, userAnswer)

	rawResponse, err := e.callLLM(ctx, prompt)
	if err != nil {
		l.Error("callLLM failed during answer evaluation", zap.Error(err), zap.String("question_id", question.ID))
		return nil, domain.NewLLMServiceError(fmt.Errorf("callLLM failed: %w", err))
	}

	l.Debug("Raw LLM response received", zap.String("raw_response", rawResponse))

	feedback, err := parseFeedback(rawResponse)
	if err != nil {
		l.Error("Failed to parse LLM response",
			zap.Error(err),
			zap.String("question_id", question.ID))
		return nil, domain.NewLLMServiceError(err)
	}
	return feedback, nil
}

// parseFeedback extracts the feedback JSON object from a raw LLM completion.
// Some models wrap reasoning in <think> tags or add prose around the JSON;
// both are stripped before unmarshaling. The score is clamped to [0, 100].
func parseFeedback(rawResponse string) (*domain.Feedback, error) {
	cleaned := strings.TrimSpace(rawResponse)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object found in LLM response: %s", cleaned)
	}

	extracted := cleaned[jsonStart : jsonEnd+1]

	var llmResp struct {
		Score        float64  `json:"score"`
		Summary      string   `json:"summary"`
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
		Suggestions  []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(extracted), &llmResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from LLM: %w", err)
	}

	if llmResp.Score < 0 {
		llmResp.Score = 0
	}
	if llmResp.Score > 100 {
		llmResp.Score = 100
	}

	return &domain.Feedback{
		Score:        llmResp.Score,
		Summary:      llmResp.Summary,
		Strengths:    llmResp.Strengths,
		Improvements: llmResp.Improvements,
		Suggestions:  llmResp.Suggestions,
	}, nil
}

func (e *llmEvaluator) callLLM(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	response, err := e.llmClient.Call(ctx, prompt, llms.WithTemperature(0.1))
	if err != nil {
		if err == context.DeadlineExceeded {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	return response, nil
}
