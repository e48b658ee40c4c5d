package httpapi

import (
	"net/http"
)

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	items, err := h.gameweekService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list gameweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameweekDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toGameweekDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetGameweekStatus is polled by the orchestration page after mark-done.
func (h *Handler) GetGameweekStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekStatus")
	defer span.End()

	number, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.gameweekService.Status(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek status failed", "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekStatusDTO{
		Gameweek:         toGameweekDTO(status.Gameweek),
		Fixtures:         status.Fixtures,
		ScorableFixtures: status.ScorableFixtures,
		Scored:           status.Scored,
		PendingScore:     status.PendingScore,
	})
}

func (h *Handler) MarkGameweekDone(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkGameweekDone")
	defer span.End()

	number, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.gameweekService.MarkDone(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "mark gameweek done failed", "gameweek", number, "operator", operatorFromContext(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := markDoneDTO{Gameweek: toGameweekDTO(result.Gameweek)}
	if result.Run != nil {
		run := toScoringRunDTO(*result.Run)
		out.Run = &run
	}
	h.logger.InfoContext(ctx, "gameweek marked done", "gameweek", number, "operator", operatorFromContext(ctx), "scored", result.Run != nil)
	writeSuccess(ctx, w, http.StatusOK, out)
}
