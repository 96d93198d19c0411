package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"

	"github.com/minhtran-dev/studynotes-be/types"
)

// upstreamErrorPayload mirrors the gateway's structured error body. Quota
// details live in the nested context object when the gateway sends one.
type upstreamErrorPayload struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Context *upstreamErrorContext `json:"context"`
	Error   *upstreamErrorPayload `json:"error"`
}

type upstreamErrorContext struct {
	Code      string `json:"code"`
	Limit     int64  `json:"limit"`
	Remaining int64  `json:"remaining"`
	ResetAt   string `json:"reset_at"`
}

// quotaMarkers map recognizable substrings to quota codes. Some transport
// layers flatten structured errors to plain text, so this textual check is
// kept as a documented last resort behind the structured-field checks.
var quotaMarkers = []struct {
	marker string
	code   string
}{
	{"daily_limit_reached", types.QuotaCodeDailyLimit},
	{"daily limit reached", types.QuotaCodeDailyLimit},
	{"account_limit_reached", types.QuotaCodeAccountLimit},
	{"account limit reached", types.QuotaCodeAccountLimit},
}

// ClassifyUpstreamError converts a failed model call into either a
// *types.QuotaError or a *types.GenerationError. Every model-call site
// goes through here so quota signals are decided once, at the transport
// boundary, and survive every layer above unchanged.
func ClassifyUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	var qe *types.QuotaError
	if errors.As(err, &qe) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && isQuotaCode(code) {
			return quotaError(code, apiErr.Message, nil)
		}
		if q, ok := quotaFromBody(apiErr.Message); ok {
			return q
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if q, ok := quotaFromBody(reqErr.Error()); ok {
			return q
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if q, ok := quotaFromBody(gErr.Body); ok {
			return q
		}
		if gErr.Code == http.StatusTooManyRequests {
			return quotaError(types.QuotaCodeDailyLimit, gErr.Message, nil)
		}
	}

	// Some transports flatten the structured body into the error text.
	if q, ok := quotaFromBody(err.Error()); ok {
		return q
	}
	if code, ok := quotaCodeFromText(err.Error()); ok {
		return quotaError(code, err.Error(), nil)
	}

	return &types.GenerationError{Message: "model call failed", Cause: err}
}

// quotaFromBody tries to read a structured quota payload out of an error
// body. The nested context object wins over top-level fields.
func quotaFromBody(body string) (*types.QuotaError, bool) {
	payload := ExtractJSON(body)
	if !strings.HasPrefix(payload, "{") {
		return nil, false
	}
	var p upstreamErrorPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, false
	}
	if p.Error != nil {
		p = *p.Error
	}

	code := p.Code
	if p.Context != nil && p.Context.Code != "" {
		code = p.Context.Code
	}
	if !isQuotaCode(code) {
		return nil, false
	}
	return quotaError(code, p.Message, p.Context), true
}

func quotaError(code, message string, ctx *upstreamErrorContext) *types.QuotaError {
	// Missing fields keep their zero values; the client treats a zero
	// limit/reset time as "unknown" rather than inventing numbers.
	q := &types.QuotaError{Code: code, Message: message}
	if ctx != nil {
		q.Limit = ctx.Limit
		q.Remaining = ctx.Remaining
		if ctx.ResetAt != "" {
			if t, err := time.Parse(time.RFC3339, ctx.ResetAt); err == nil {
				q.ResetAt = t
			}
		}
	}
	return q
}

func quotaCodeFromText(msg string) (string, bool) {
	lower := strings.ToLower(msg)
	for _, m := range quotaMarkers {
		if strings.Contains(lower, m.marker) {
			return m.code, true
		}
	}
	return "", false
}

func isQuotaCode(code string) bool {
	return code == types.QuotaCodeDailyLimit || code == types.QuotaCodeAccountLimit
}
