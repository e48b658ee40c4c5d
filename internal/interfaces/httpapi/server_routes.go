package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
)

type routes struct {
	mux     *http.ServeMux
	handler *Handler
	metrics *metrics.Metrics
}

func (r *routes) handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, instrumentRoute(r.metrics, pattern, h))
}

func (r *routes) registerSystemRoutes() {
	r.mux.HandleFunc("GET /healthz", r.handler.Healthz)
	if r.metrics != nil {
		r.mux.Handle("GET /metrics", r.metrics.Handler())
	}
}

func (r *routes) registerAdminRoutes(adminToken string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		r.handle(pattern, RequireAdminToken(adminToken, fn))
	}

	// Live preview while the correction form is edited; never persisted.
	admin("POST /v1/admin/points/preview", r.handler.PreviewPoints)
	admin("POST /v1/admin/fixtures/{fixtureID}/players/{playerID}/preview", r.handler.PreviewPlayerPoints)

	admin("PUT /v1/admin/fixtures/{fixtureID}/players/{playerID}/stats", r.handler.CorrectPlayerStats)
	admin("GET /v1/admin/fixtures/{fixtureID}/players/{playerID}/corrections", r.handler.ListStatCorrections)
	admin("GET /v1/admin/fixtures/{fixtureID}/stats", r.handler.ListFixtureStats)
	admin("POST /v1/admin/fixtures/{fixtureID}/stats", r.handler.IngestFixtureStats)
	admin("POST /v1/admin/fixtures/{fixtureID}/score", r.handler.ScoreFixture)

	admin("GET /v1/admin/gameweeks", r.handler.ListGameweeks)
	admin("GET /v1/admin/gameweeks/{gameweek}", r.handler.GetGameweekStatus)
	admin("POST /v1/admin/gameweeks/{gameweek}/done", r.handler.MarkGameweekDone)
}

func (r *routes) registerInternalJobRoutes(internalJobToken string) {
	r.handle("POST /v1/internal/jobs/score-gameweek", RequireInternalJobToken(internalJobToken, http.HandlerFunc(r.handler.RunScoreGameweekJob)))
	r.handle("POST /v1/internal/jobs/sync-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(r.handler.RunSyncFixturesJob)))
}
