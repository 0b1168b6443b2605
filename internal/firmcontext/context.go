package firmcontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// FirmContextKey is the request context key for the active firm (tenant) ID.
type FirmContextKey struct{}

// WithFirmID stores the firm ID in the context.
func WithFirmID(ctx context.Context, firmID snowflake.ID) context.Context {
	return context.WithValue(ctx, FirmContextKey{}, firmID)
}

// FirmIDFromContext returns the firm ID from context, if set.
func FirmIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	switch typed := ctx.Value(FirmContextKey{}).(type) {
	case snowflake.ID:
		return typed, typed != 0
	case int64:
		return snowflake.ID(typed), typed != 0
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, parsed != 0
		}
	}
	return 0, false
}
