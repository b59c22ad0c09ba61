package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/abhisek/levelquiz/internal/quiz"
)

// DefaultURL is the public quiz service endpoint.
const DefaultURL = "https://api-ghz-v2.azurewebsites.net/api/v2/quiz"

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// HTTPSource fetches question sequences from the remote quiz service.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client. Its Timeout is left alone.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithRateLimit throttles outgoing requests to r per second with the given burst.
func WithRateLimit(r float64, burst int) HTTPOption {
	return func(s *HTTPSource) { s.limiter = rate.NewLimiter(rate.Limit(r), burst) }
}

// NewHTTPSource creates a source for baseURL. An empty baseURL means DefaultURL.
func NewHTTPSource(baseURL string, timeout time.Duration, opts ...HTTPOption) (*HTTPSource, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}

	s := &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPSource) FetchQuestions(ctx context.Context, level int) ([]quiz.Question, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &quiz.NetworkError{Level: level, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.levelURL(level), nil)
	if err != nil {
		return nil, &quiz.NetworkError{Level: level, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &quiz.NetworkError{Level: level, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &quiz.NetworkError{Level: level, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &quiz.NetworkError{Level: level, Err: fmt.Errorf("read body: %w", err)}
	}
	return decodePayload(level, body)
}

func (s *HTTPSource) levelURL(level int) string {
	u, _ := url.Parse(s.baseURL)
	q := u.Query()
	q.Set("level", strconv.Itoa(level))
	u.RawQuery = q.Encode()
	return u.String()
}

// decodePayload checks the payload shape and maps it to questions.
func decodePayload(level int, body []byte) ([]quiz.Question, error) {
	if _, err := quizPayloadSchema.Validate(body); err != nil {
		return nil, &quiz.MalformedDataError{Level: level, Reason: "unexpected response shape", Err: err}
	}

	var p quizPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &quiz.MalformedDataError{Level: level, Reason: "decode response", Err: err}
	}
	return mapQuestions(level, p.Test.Question)
}

func mapQuestions(level int, items []wireQuestion) ([]quiz.Question, error) {
	qs := make([]quiz.Question, 0, len(items))
	for i, w := range items {
		q := w.toQuestion()
		if err := q.Validate(); err != nil {
			return nil, &quiz.MalformedDataError{Level: level, Reason: fmt.Sprintf("question %d", i+1), Err: err}
		}
		qs = append(qs, q)
	}
	return qs, nil
}
