package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportedDerivesMissingTotal(t *testing.T) {
	require.Equal(t, TokenUsage{PromptTokens: 300, CompletionTokens: 80, TotalTokens: 380}, Reported(300, 80, 380))
	require.Equal(t, 380, Reported(300, 80, 0).TotalTokens)
	require.False(t, Reported(300, 80, 0).Estimated)
}

func TestEstimatedIsFlagged(t *testing.T) {
	u := Estimated(10, 4)
	require.Equal(t, 14, u.TotalTokens)
	require.True(t, u.Estimated)
	require.False(t, u.IsZero())
	require.True(t, TokenUsage{}.IsZero())
	require.True(t, Estimated(0, 0).IsZero())
}
