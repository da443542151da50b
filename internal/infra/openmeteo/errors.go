package openmeteo

import "errors"

var (
	// ErrUpstream marks transport failures and non-success statuses.
	ErrUpstream = errors.New("open-meteo unavailable")
	// ErrMalformed marks success responses whose payload cannot be used.
	ErrMalformed = errors.New("open-meteo response malformed")
)

type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
