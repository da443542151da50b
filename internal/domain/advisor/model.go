package advisor

import (
	"github.com/yanqian/climate-advisor/internal/domain/climate"
	"github.com/yanqian/climate-advisor/pkg/metrics"
)

// Category selects the guidance block used in the prompt.
type Category string

const (
	CategoryHome     Category = "home"
	CategoryIndustry Category = "industry"
)

// Source reports where the advisory text came from.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Config holds the model settings for advisory generation.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	RoleLine    string
}

// Input is everything the generator needs to build a prompt.
type Input struct {
	Metrics       climate.EnergyMetrics
	Category      Category
	LocationLabel string
	HorizonDays   int
}

// Advisory is the generated recommendation. It is never cached.
type Advisory struct {
	Text       string              `json:"text"`
	Source     string              `json:"source"`
	Error      string              `json:"error,omitempty"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
