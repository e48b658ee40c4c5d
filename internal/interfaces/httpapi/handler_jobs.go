package httpapi

import (
	"net/http"
)

// RunScoreGameweekJob scores one gameweek, or every done gameweek whose
// points are stale when the body omits it.
func (h *Handler) RunScoreGameweekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreGameweekJob")
	defer span.End()

	var req scoreGameweekJobRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if req.Gameweek > 0 {
		run, err := h.scoringService.ScoreGameweek(ctx, req.Gameweek)
		if err != nil {
			h.logger.WarnContext(ctx, "run score gameweek job failed", "gameweek", req.Gameweek, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, []scoringRunDTO{toScoringRunDTO(run)})
		return
	}

	runs, err := h.scoringService.ScorePendingGameweeks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run score pending gameweeks job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scoringRunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, toScoringRunDTO(run))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RunSyncFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixturesJob")
	defer span.End()

	var req syncFixturesJobRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestionService.SyncFixtureFromFeed(ctx, req.FixtureIDs...)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync fixtures job failed", "fixture_ids", req.FixtureIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := syncResultDTO{Fixtures: make([]ingestResultDTO, 0, len(result.Fixtures)), Rows: result.Rows}
	for _, item := range result.Fixtures {
		out.Fixtures = append(out.Fixtures, toIngestResultDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
