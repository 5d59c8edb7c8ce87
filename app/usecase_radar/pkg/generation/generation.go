// Package generation turns research snippets into a list of AI use cases with
// a hosted text-generation model.
package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/cohere"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

const promptTpl = "Based on the following industry insights: %s, generate a list of " +
	"relevant AI use cases for this industry. Focus on operational efficiency and innovation."

// Generator produces text for a prompt with a bounded output length.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ChatGenerator adapts an eino chat model to Generator.
type ChatGenerator struct {
	cm einomodel.BaseChatModel
}

// NewChatGenerator wraps cm.
func NewChatGenerator(cm einomodel.BaseChatModel) *ChatGenerator {
	return &ChatGenerator{cm: cm}
}

// Generate sends prompt as a single user message.
func (g *ChatGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}
	resp, err := g.cm.Generate(ctx, messages, einomodel.WithMaxTokens(maxTokens))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// NewGenerator builds the backend named by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, timeout time.Duration) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderCohere, "":
		return cohere.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model, &http.Client{Timeout: timeout}), nil

	case config.ProviderOpenAI:
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("LLM init failed: %w", err)
		}
		return NewChatGenerator(chatModel), nil

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// NewLimiter builds the process-wide limiter for generation calls. RPM <= 0
// disables limiting.
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	if cfg.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)
}

// Agent generates use cases from snippets.
type Agent struct {
	gen       Generator
	maxTokens int
	limiter   *rate.Limiter
}

// NewAgent creates a use-case agent. A nil limiter means unlimited.
func NewAgent(gen Generator, maxTokens int, limiter *rate.Limiter) *Agent {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Agent{gen: gen, maxTokens: maxTokens, limiter: limiter}
}

// Generate issues one generation call and splits the answer into lines.
// Blank lines are kept; callers filter them with CleanUseCases.
func (a *Agent) Generate(ctx context.Context, snippets []string) model.Result[[]string] {
	if err := a.limiter.Wait(ctx); err != nil {
		return model.Fail[[]string](model.CallGeneration, model.FailureTransport, err)
	}

	text, err := a.gen.Generate(ctx, BuildPrompt(snippets), a.maxTokens)
	if err != nil {
		var se *cohere.StatusError
		if errors.As(err, &se) {
			res := model.FailStatus[[]string](model.CallGeneration, se.StatusCode)
			res.Failure.Err = err
			return res
		}
		return model.Fail[[]string](model.CallGeneration, model.FailureTransport, err)
	}
	return model.Success(SplitUseCases(text))
}

// BuildPrompt joins snippets with a single space and embeds them in the
// use-case prompt.
func BuildPrompt(snippets []string) string {
	return fmt.Sprintf(promptTpl, strings.Join(snippets, " "))
}

// SplitUseCases trims surrounding whitespace from generated text and splits it
// on line breaks.
func SplitUseCases(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

// CleanUseCases trims each entry and drops blank ones.
func CleanUseCases(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}
