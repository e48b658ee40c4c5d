package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
)

type RouterConfig struct {
	AdminToken         string
	InternalJobToken   string
	CORSAllowedOrigins []string
	Metrics            *metrics.Metrics
	Logger             *logging.Logger
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	r := &routes{mux: http.NewServeMux(), handler: handler, metrics: cfg.Metrics}
	r.registerSystemRoutes()
	r.registerAdminRoutes(cfg.AdminToken)
	r.registerInternalJobRoutes(cfg.InternalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, r.mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
