package types

import (
	"fmt"
	"time"
)

// Quota codes emitted by the model gateway. They cross the API unchanged
// so clients can key UI behavior off them.
const (
	QuotaCodeDailyLimit   = "DAILY_LIMIT_REACHED"
	QuotaCodeAccountLimit = "ACCOUNT_LIMIT_REACHED"
)

// QuotaError reports that the upstream model rejected a call for quota
// reasons. Zero values in Limit, Remaining and ResetAt mean the gateway
// did not report them.
type QuotaError struct {
	Code      string    `json:"code"`
	Limit     int64     `json:"limit,omitempty"`
	Remaining int64     `json:"remaining,omitempty"`
	ResetAt   time.Time `json:"reset_at,omitempty"`
	Message   string    `json:"message,omitempty"`
}

func (e *QuotaError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GenerationError wraps any non-quota failure of a model call.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
