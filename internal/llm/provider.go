package llm

import (
	"context"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal chat-completion surface the answerer needs. Any
// OpenAI-compatible backend (llama.cpp server, vLLM, Ollama's compat
// endpoint) satisfies it through the same adapter.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is an optional capability used for the startup connectivity
// probe. Callers detect it with a type assertion.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to Client and ModelLister.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
	return p.Inner.ListModels(ctx)
}

// NewOpenAI builds a provider for an OpenAI-compatible server. An empty
// baseURL keeps the library default endpoint.
func NewOpenAI(baseURL, apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = NewHTTPClient()
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

// NewHTTPClient returns an http.Client tuned for a handful of concurrent
// inference calls against local or remote backends.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: transport}
}
