package instrument

import "context"

type correlationIDContextKey struct{}

// SetCorrelationID stores the correlation id in the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, cid)
}

// GetCorrelationID returns the correlation id from the context, or an empty
// string when none was set.
func GetCorrelationID(ctx context.Context) string {
	cid, ok := ctx.Value(correlationIDContextKey{}).(string)
	if !ok {
		return ""
	}

	return cid
}
