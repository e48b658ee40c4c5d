package httpapi

import (
	"context"
	"strings"
)

type contextKey string

const operatorContextKey contextKey = "admin_operator"

const defaultOperator = "admin"

func withOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorContextKey, operator)
}

// operatorFromContext returns the admin who issued the request, falling back
// to a generic name when the header was not sent.
func operatorFromContext(ctx context.Context) string {
	op, _ := ctx.Value(operatorContextKey).(string)
	if strings.TrimSpace(op) == "" {
		return defaultOperator
	}
	return op
}
