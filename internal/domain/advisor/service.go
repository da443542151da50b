package advisor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yanqian/climate-advisor/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/climate-advisor/pkg/errors"
	"github.com/yanqian/climate-advisor/pkg/metrics"
)

var errEmptyCompletion = errors.New("model returned no content")

// ChatClient is the subset of the LLM client used for advisories.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// TokenCounter counts prompt tokens; estimated reports a heuristic count.
type TokenCounter interface {
	Count(text string) (n int, estimated bool)
}

// Service produces one advisory per call and never fails.
type Service interface {
	Generate(ctx context.Context, in Input) Advisory
}

type service struct {
	cfg     Config
	client  ChatClient
	counter TokenCounter
	logger  *slog.Logger
}

// NewService wires the advisory generator.
func NewService(cfg Config, client ChatClient, counter TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		client:  client,
		counter: counter,
		logger:  logger.With("component", "advisor.service"),
	}
}

// Generate issues a single completion call. Any failure yields the fallback advisory.
func (s *service) Generate(ctx context.Context, in Input) Advisory {
	prompt := BuildPrompt(s.cfg.RoleLine, in)

	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err == nil && completion.Content() == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		degraded := apperrors.Wrap(apperrors.CodeGenerationDegraded, "advisory generation failed", err)
		s.logger.Warn("advisory degraded to fallback", "location", in.LocationLabel, "category", in.Category, "error", degraded)
		return Advisory{
			Text:   FallbackText(err),
			Source: SourceFallback,
			Error:  err.Error(),
		}
	}

	adv := Advisory{
		Text:   completion.Content(),
		Source: SourceGenerated,
	}
	usage := s.usage(prompt, completion)
	if !usage.IsZero() {
		adv.TokenUsage = &usage
	}
	s.logger.Info("advisory generated", "location", in.LocationLabel, "category", in.Category, "total_tokens", usage.TotalTokens, "estimated", usage.Estimated)
	return adv
}

func (s *service) usage(prompt string, completion chatgpt.ChatCompletionResponse) metrics.TokenUsage {
	if u := completion.Usage; u != nil && u.TotalTokens > 0 {
		return metrics.Reported(u.PromptTokens, u.CompletionTokens, u.TotalTokens)
	}
	if s.counter == nil {
		return metrics.TokenUsage{}
	}
	// counted locally; the upstream did not report usage
	promptTokens, heuristic := s.counter.Count(prompt)
	completionTokens, _ := s.counter.Count(completion.Content())
	s.logger.Debug("token usage counted locally", "word_heuristic", heuristic)
	return metrics.Estimated(promptTokens, completionTokens)
}
