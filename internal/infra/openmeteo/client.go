package openmeteo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

func newRestyClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
}

func upstreamStatusError(op string, resp *resty.Response) error {
	reason := resp.Status()
	var apiErr apiError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Reason != "" {
		reason = apiErr.Reason
	}
	return fmt.Errorf("%w: %s request failed: status=%d reason=%s", ErrUpstream, op, resp.StatusCode(), reason)
}
