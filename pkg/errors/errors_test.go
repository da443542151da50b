package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFormatsMessage(t *testing.T) {
	err := Wrap(CodeUpstreamUnavailable, "forecast request failed", errors.New("status=503"))
	require.EqualError(t, err, "forecast request failed: status=503")

	bare := Wrap(CodeInvalidInput, "days out of range", nil)
	require.EqualError(t, bare, "days out of range")
}

func TestIsCodeFollowsWrappedChain(t *testing.T) {
	base := Wrap(CodeUnknownZone, "zone not found", nil)
	wrapped := fmt.Errorf("resolve: %w", base)

	require.True(t, IsCode(wrapped, CodeUnknownZone))
	require.False(t, IsCode(wrapped, CodeInvalidInput))
	require.Equal(t, CodeUnknownZone, CodeOf(wrapped))
	require.Empty(t, CodeOf(errors.New("plain")))
}
