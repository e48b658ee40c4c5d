package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/usecase"
)

type Handler struct {
	correctionService *usecase.StatCorrectionService
	scoringService    *usecase.ScoringService
	ingestionService  *usecase.IngestionService
	gameweekService   *usecase.GameweekService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	correctionService *usecase.StatCorrectionService,
	scoringService *usecase.ScoringService,
	ingestionService *usecase.IngestionService,
	gameweekService *usecase.GameweekService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		correctionService: correctionService,
		scoringService:    scoringService,
		ingestionService:  ingestionService,
		gameweekService:   gameweekService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody reads a JSON payload. An empty body leaves dst untouched when
// allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	if allowEmpty && (r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0) {
		return nil
	}
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathValue(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func gameweekFromPath(r *http.Request) (int, error) {
	raw, err := pathValue(r, "gameweek")
	if err != nil {
		return 0, err
	}
	number, err := strconv.Atoi(raw)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: gameweek must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return number, nil
}
