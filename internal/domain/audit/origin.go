package audit

import "context"

// Origin is the network origin of the request that caused an event.
type Origin struct {
	IP        string
	UserAgent string
}

type originKey struct{}

func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the request origin, or "unknown" fields when absent.
func OriginFrom(ctx context.Context) Origin {
	if o, ok := ctx.Value(originKey{}).(Origin); ok {
		return o
	}
	return Origin{IP: "unknown", UserAgent: "unknown"}
}
