package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-admin/internal/usecase"
)

func (h *Handler) IngestFixtureStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestFixtureStats")
	defer span.End()

	fixtureID, err := pathValue(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req ingestFixtureStatsRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows := make([]usecase.IngestStatInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, usecase.IngestStatInput{
			PlayerID: row.PlayerID,
			Position: row.Position,
			Stat:     row.Stats.toDomain(),
		})
	}

	result, err := h.ingestionService.IngestFixtureStats(ctx, fixtureID, rows)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest fixture stats failed", "fixture_id", fixtureID, "rows", len(rows), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toIngestResultDTO(result))
}

func (h *Handler) ScoreFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreFixture")
	defer span.End()

	fixtureID, err := pathValue(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.scoringService.ScoreFixture(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "score fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toScoringRunDTO(run))
}
