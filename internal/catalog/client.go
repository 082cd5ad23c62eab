package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRequestTimeout = 15 * time.Second

// Client is a thin HTTP client for the question catalog API. Every call is
// a single attempt: no retries, no response caching. Callers own retry
// policy; the server owns all filtering and quota accounting.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validator  *validation.Validator
}

// NewClient creates a catalog client against the given base URL. A nil
// httpClient gets a default with a request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		validator:  validation.NewValidator(),
	}
}

// GetPopularQuestions fetches curated popular questions. An empty company
// omits the parameter entirely; the server treats absence as "no filter".
func (c *Client) GetPopularQuestions(ctx context.Context, company string) ([]dto.QuestionResponse, error) {
	params := url.Values{}
	if company != "" {
		params.Set("company", company)
	}
	var questions []dto.QuestionResponse
	if err := c.getJSON(ctx, "getPopularQuestions", "/api/questions/popular", params, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestionsByTopic fetches the questions for a topic and category pair.
func (c *Client) GetQuestionsByTopic(ctx context.Context, topic, category string) ([]dto.QuestionResponse, error) {
	params := url.Values{}
	params.Set("topic", topic)
	params.Set("category", category)
	var questions []dto.QuestionResponse
	if err := c.getJSON(ctx, "getQuestionsByTopic", "/api/questions", params, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestion fetches a single question by ID. Viewing a question through
// this call is what consumes the anonymous free quota on the server.
func (c *Client) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	var question dto.QuestionResponse
	if err := c.getJSON(ctx, "getQuestion", "/api/questions/"+url.PathEscape(id), nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// SearchQuestions runs a free-text search. The query is passed through
// as-is; empty-query behavior is server-defined.
func (c *Client) SearchQuestions(ctx context.Context, query string) ([]dto.QuestionResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	var questions []dto.QuestionResponse
	if err := c.getJSON(ctx, "searchQuestions", "/api/questions/search", params, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SubmitAnswer posts a user's answer for evaluation.
func (c *Client) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.AnswerResponse, error) {
	var answer dto.AnswerResponse
	if err := c.postJSON(ctx, "submitAnswer", "/api/answers", req, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// GetAnswer fetches a stored answer with its feedback.
func (c *Client) GetAnswer(ctx context.Context, id string) (*dto.AnswerResponse, error) {
	var answer dto.AnswerResponse
	if err := c.getJSON(ctx, "getAnswer", "/api/answers/"+url.PathEscape(id), nil, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// CreateSession starts a practice session.
func (c *Client) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	var session dto.SessionResponse
	if err := c.postJSON(ctx, "createSession", "/api/sessions", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession fetches a practice session by ID.
func (c *Client) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	var session dto.SessionResponse
	if err := c.getJSON(ctx, "getSession", "/api/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SubmitCommunityQuestion proposes a new question for the catalog. Invalid
// requests are rejected locally, before any network call.
func (c *Client) SubmitCommunityQuestion(ctx context.Context, req *dto.CommunityQuestionRequest) (*dto.CommunityQuestionResponse, error) {
	if errs := c.validator.ValidateCommunityQuestionRequest(req); len(errs) > 0 {
		return nil, errs
	}
	var created dto.CommunityQuestionResponse
	if err := c.postJSON(ctx, "submitCommunityQuestion", "/api/community-questions", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FetchAccessStatus fetches the authoritative quota snapshot for the
// current visitor.
func (c *Client) FetchAccessStatus(ctx context.Context) (*dto.AccessStatusResponse, error) {
	var status dto.AccessStatusResponse
	if err := c.getJSON(ctx, "fetchAccessStatus", "/api/auth/access-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// FetchCurrentUser fetches the signed-in user's profile. An anonymous
// visitor resolves to (nil, nil): the 401 from the server is the normal
// "not signed in" answer, not a failure.
func (c *Client) FetchCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	err := c.getJSON(ctx, "fetchCurrentUser", "/api/auth/user", nil, &user)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// HomeData bundles everything the landing view needs in one fetch.
type HomeData struct {
	PopularQuestions []dto.QuestionResponse
	AccessStatus     *dto.AccessStatusResponse
}

// FetchHome loads popular questions and the access status concurrently.
// Either sub-fetch failing fails the whole call.
func (c *Client) FetchHome(ctx context.Context, company string) (*HomeData, error) {
	var home HomeData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		questions, err := c.GetPopularQuestions(gctx, company)
		if err != nil {
			return err
		}
		home.PopularQuestions = questions
		return nil
	})
	g.Go(func() error {
		status, err := c.FetchAccessStatus(gctx)
		if err != nil {
			return err
		}
		home.AccessStatus = status
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &home, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.NewTransportFailureError(operation, err)
	}
	return c.do(operation, req, out)
}

func (c *Client) postJSON(ctx context.Context, operation, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewTransportFailureError(operation, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domain.NewTransportFailureError(operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(operation, req, out)
}

func (c *Client) do(operation string, req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Warn("Catalog request failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return domain.NewTransportFailureError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(operation, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewTransportFailureError(operation, err)
	}
	return nil
}

// apiError is the shape the server's error handler emits.
type apiError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (c *Client) errorFromResponse(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr apiError
	decodeErr := json.Unmarshal(body, &apiErr)

	// Any 401 is the normal "not signed in" answer, whatever code the
	// server attached (the auth middleware emits MISSING_AUTH_TOKEN and
	// INVALID_TOKEN variants). Collapse them so callers can treat
	// unauthorized uniformly; FetchCurrentUser resolves it to anonymous.
	if resp.StatusCode == http.StatusUnauthorized {
		message := apiErr.Message
		if message == "" {
			message = fmt.Sprintf("%s: authentication required", operation)
		}
		return domain.NewUnauthorizedError(message).WithContext("operation", operation)
	}

	if decodeErr == nil && apiErr.Code != "" {
		domainErr := &domain.DomainError{
			Code:    domain.ErrorCode(apiErr.Code),
			Message: apiErr.Message,
		}
		if len(apiErr.Details) > 0 {
			domainErr.Context = apiErr.Details
		}
		return domainErr.WithContext("operation", operation)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NewNotFoundError(operation).WithContext("operation", operation)
	case http.StatusForbidden:
		return domain.NewAuthRequiredError(domain.FreeQuota).WithContext("operation", operation)
	default:
		return domain.NewTransportFailureError(operation,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
}
