package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goanswer/internal/llm"
)

// ChatAnswerer emulates an extractive model on top of an OpenAI-compatible
// chat backend. The model is instructed to copy a verbatim span and report
// a confidence; anything that is not a substring of the passage is rejected
// so the extractive contract still holds.
type ChatAnswerer struct {
	Client llm.Client
	Model  string
	// PerRequestTimeout bounds each completion attempt. Zero means 30s.
	PerRequestTimeout time.Duration
	// RetryDelay is the fixed backoff before the single retry. Zero means
	// 100ms; tests shrink it.
	RetryDelay time.Duration
}

const chatSystemPrompt = "You are an extractive question answering engine. " +
	"Given a context and a question, copy the shortest span of the context that answers the question, verbatim. " +
	"Respond with strict JSON only: {\"answer\": string, \"confidence\": number between 0 and 1}. " +
	"If the context does not contain the answer, respond {\"answer\": \"\", \"confidence\": 0}. " +
	"Never use outside knowledge and never paraphrase."

type chatSpan struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

func (c *ChatAnswerer) Answer(ctx context.Context, question, passage string) (Answer, error) {
	if c.Client == nil || strings.TrimSpace(c.Model) == "" {
		return Answer{}, fmt.Errorf("%w: chat answerer not configured", ErrUnavailable)
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildChatUserMessage(question, passage)},
		},
		Temperature: 0.1,
		N:           1,
	}

	resp, err := c.tryOnce(ctx, req)
	if err != nil {
		delay := c.RetryDelay
		if delay <= 0 {
			delay = 100 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return Answer{}, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(delay):
		}
		resp, err = c.tryOnce(ctx, req)
		if err != nil {
			return Answer{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if len(resp.Choices) == 0 {
		return Answer{}, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	span, err := parseChatSpan(resp.Choices[0].Message.Content)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	answer := strings.TrimSpace(span.Answer)
	if answer == "" {
		return Answer{}, ErrNoAnswer
	}
	// Enforce the extractive contract: the span must exist in the passage.
	start := strings.Index(strings.ToLower(passage), strings.ToLower(answer))
	if start < 0 {
		return Answer{}, ErrNoAnswer
	}
	return Answer{
		Text:  passage[start : start+len(answer)],
		Score: clampScore(span.Confidence),
		Start: start,
		End:   start + len(answer),
	}, nil
}

func (c *ChatAnswerer) tryOnce(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	timeout := c.PerRequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Client.CreateChatCompletion(ctx, req)
}

func buildChatUserMessage(question, passage string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(passage)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}

// parseChatSpan decodes the strict-JSON contract, tolerating code fences
// some backends wrap around JSON output.
func parseChatSpan(content string) (chatSpan, error) {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	var span chatSpan
	if err := json.Unmarshal([]byte(s), &span); err != nil {
		return chatSpan{}, fmt.Errorf("parse span json: %v", err)
	}
	return span, nil
}
