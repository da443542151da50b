package tokens

import (
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding matches the gpt-3.5/gpt-4 family.
const DefaultEncoding = "cl100k_base"

type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// Counter counts prompt tokens with a BPE encoding. When the encoding cannot be
// loaded it estimates from whitespace separated words instead.
type Counter struct {
	enc encoder
}

// NewCounter loads the named encoding. Loading may need network access to fetch the
// vocabulary; failures are logged and the counter degrades to estimates.
func NewCounter(encoding string, logger *slog.Logger) *Counter {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Warn("token encoding unavailable, using word estimates", "encoding", encoding, "error", err)
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count returns the token count of text and whether it is an estimate.
func (c *Counter) Count(text string) (int, bool) {
	if c == nil || c.enc == nil {
		return estimate(text), true
	}
	return len(c.enc.Encode(text, nil, nil)), false
}

// estimate assumes roughly four tokens per three English words.
func estimate(text string) int {
	words := len(strings.Fields(text))
	return (words*4 + 2) / 3
}
