package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-admin/internal/usecase"
)

func (h *Handler) PreviewPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewPoints")
	defer span.End()

	var req previewPointsRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	breakdown, err := h.correctionService.Preview(ctx, usecase.PreviewInput{
		Position: req.Position,
		Stat:     req.Stats.toDomain(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "preview points failed", "position", req.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toBreakdownDTO(breakdown))
}

func (h *Handler) PreviewPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewPlayerPoints")
	defer span.End()

	fixtureID, err := pathValue(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathValue(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req previewPlayerPointsRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.correctionService.PreviewForPlayer(ctx, fixtureID, playerID, req.Stats.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "preview player points failed", "fixture_id", fixtureID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPlayerPreviewDTO(preview))
}

func (h *Handler) CorrectPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CorrectPlayerStats")
	defer span.End()

	fixtureID, err := pathValue(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathValue(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req correctPlayerStatsRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	operator := operatorFromContext(ctx)
	result, err := h.correctionService.ApplyCorrection(ctx, usecase.CorrectionInput{
		FixtureID: fixtureID,
		PlayerID:  playerID,
		Stat:      req.Stats.toDomain(),
		Operator:  operator,
		Reason:    req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply stat correction failed",
			"fixture_id", fixtureID,
			"player_id", playerID,
			"operator", operator,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, correctionResultDTO{
		Stat:       toFixtureStatDTO(result.Stat),
		Correction: toCorrectionDTO(result.Correction),
		Breakdown:  toBreakdownDTO(result.Breakdown),
	})
}

func (h *Handler) ListStatCorrections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStatCorrections")
	defer span.End()

	fixtureID, err := pathValue(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathValue(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.correctionService.ListCorrections(ctx, fixtureID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list stat corrections failed", "fixture_id", fixtureID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]correctionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCorrectionDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListFixtureStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtureStats")
	defer span.End()

	fixtureID, err := pathValue(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.correctionService.ListFixtureStats(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixture stats failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]fixtureStatDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toFixtureStatDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
