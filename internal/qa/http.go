package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPAnswerer calls an extractive QA inference server over HTTP. The wire
// shape matches the common question-answering pipeline servers: POST
// {"question": ..., "context": ...} to /answer, receive {"answer", "score",
// "start", "end"}.
type HTTPAnswerer struct {
	BaseURL string
	// Model is forwarded so multi-checkpoint servers can route; optional.
	Model      string
	HTTPClient *http.Client
	// PerRequestTimeout bounds each attempt. Zero means 30s. Inference is
	// a blocking call; a timeout surfaces as ErrUnavailable rather than a
	// crash or a fake low-confidence answer.
	PerRequestTimeout time.Duration
	// RetryDelay is the fixed backoff before the single retry on transport
	// errors. Zero means 100ms; tests shrink it.
	RetryDelay time.Duration
}

type httpRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	Model    string `json:"model,omitempty"`
}

type httpResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

func (h *HTTPAnswerer) Answer(ctx context.Context, question, passage string) (Answer, error) {
	if strings.TrimSpace(h.BaseURL) == "" {
		return Answer{}, fmt.Errorf("%w: missing base url", ErrUnavailable)
	}
	endpoint, err := h.endpoint()
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	body, err := json.Marshal(httpRequest{Question: question, Context: passage, Model: h.Model})
	if err != nil {
		return Answer{}, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	resp, err := h.tryOnce(ctx, endpoint, body)
	if err != nil {
		// One short fixed-backoff retry for transient transport errors.
		delay := h.RetryDelay
		if delay <= 0 {
			delay = 100 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return Answer{}, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(delay):
		}
		resp, err = h.tryOnce(ctx, endpoint, body)
		if err != nil {
			return Answer{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if strings.TrimSpace(resp.Answer) == "" {
		return Answer{}, ErrNoAnswer
	}
	return Answer{
		Text:  resp.Answer,
		Score: clampScore(resp.Score),
		Start: resp.Start,
		End:   resp.End,
	}, nil
}

func (h *HTTPAnswerer) endpoint() (string, error) {
	u, err := url.Parse(h.BaseURL)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(u.Path, "/answer") {
		u.Path = strings.TrimRight(u.Path, "/") + "/answer"
	}
	return u.String(), nil
}

func (h *HTTPAnswerer) tryOnce(ctx context.Context, endpoint string, body []byte) (httpResponse, error) {
	timeout := h.PerRequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return httpResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	hc := h.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return httpResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpResponse{}, fmt.Errorf("inference status %d", resp.StatusCode)
	}
	var out httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return httpResponse{}, fmt.Errorf("decode response: %v", err)
	}
	return out, nil
}
