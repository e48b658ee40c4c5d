package statsfeed

import (
	"context"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-admin/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-admin/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultBackoffUnit = 500 * time.Millisecond
	maxResponseBytes   = 4 << 20
)

// ErrTransient marks failures worth retrying: network errors, 429 and 5xx.
var ErrTransient = crerr.New("stats feed transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	BackoffUnit    time.Duration
	Logger         *logging.Logger
	Metrics        *metrics.Metrics
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches per-fixture player stats from the upstream stats provider.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	backoffUnit    time.Duration
	logger         *logging.Logger
	metrics        *metrics.Metrics
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.StatsFeed = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.BackoffUnit
	if backoff <= 0 {
		backoff = defaultBackoffUnit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			Name:                "fantasy-admin-statsfeed",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		backoffUnit:    backoff,
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchFixtureStats(ctx context.Context, feedFixtureID int64) ([]usecase.ExternalPlayerStat, error) {
	if feedFixtureID <= 0 {
		return nil, crerr.Newf("feed fixture id must be greater than zero, got %d", feedFixtureID)
	}
	if c.baseURL == "" {
		return nil, crerr.Wrap(usecase.ErrDependencyUnavailable, "stats feed base url is not configured")
	}

	path := "/fixtures/" + strconv.FormatInt(feedFixtureID, 10) + "/player-stats"
	out, err, _ := c.flight.Do(path, func() (any, error) {
		var raw []byte
		call := func() error {
			var reqErr error
			raw, reqErr = c.get(ctx, path)
			return reqErr
		}

		var runErr error
		if c.circuitEnabled {
			runErr = c.breaker.Execute(call, IsTransient)
		} else {
			runErr = call()
		}
		c.metrics.IncFeedRequest(runErr)
		if crerr.Is(runErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "stats feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Wrap(usecase.ErrDependencyUnavailable, "stats feed is temporarily unavailable")
		}
		return raw, runErr
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch player stats feed_fixture_id=%d", feedFixtureID)
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}

	var envelope playerStatsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode player stats payload")
	}

	stats := make([]usecase.ExternalPlayerStat, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		playerID := strings.TrimSpace(item.PlayerID)
		if playerID == "" {
			continue
		}
		stats = append(stats, mapPlayerStat(item))
	}
	return stats, nil
}

// IsTransient reports whether err is a retryable upstream failure.
func IsTransient(err error) bool {
	return crerr.Is(err, ErrTransient)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	uri := c.buildURL(path)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, uri)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsTransient(err) || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.backoffUnit)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "stats feed request failed", "path", path, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, uri string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), ErrTransient)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if status >= fasthttp.StatusOK && status < fasthttp.StatusMultipleChoices {
		return append([]byte(nil), body...), nil
	}

	statusErr := crerr.Newf("provider status=%d message=%s", status, providerMessage(body))
	if isRetryableStatus(status) {
		return nil, crerr.Mark(statusErr, ErrTransient)
	}
	return nil, statusErr
}

func (c *Client) buildURL(path string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	return buf.String()
}

func mapPlayerStat(item playerStatItem) usecase.ExternalPlayerStat {
	cleanSheet := 0
	if item.CleanSheet {
		cleanSheet = 1
	}
	return usecase.ExternalPlayerStat{
		PlayerID: strings.TrimSpace(item.PlayerID),
		Position: strings.TrimSpace(item.Position),
		Stat: scoring.MatchStat{
			MinutesPlayed:   item.MinutesPlayed,
			GoalsScored:     item.GoalsScored,
			Assists:         item.Assists,
			CleanSheet:      cleanSheet,
			ShotsSaved:      item.ShotsSaved,
			PenaltiesSaved:  item.PenaltiesSaved,
			YellowCards:     item.YellowCards,
			RedCards:        item.RedCards,
			OwnGoals:        item.OwnGoals,
			PenaltiesMissed: item.PenaltiesMissed,
			GoalsConceded:   item.GoalsConceded,
		},
	}
}

func providerMessage(body []byte) string {
	var envelope errorEnvelope
	if err := sonic.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
		return strings.TrimSpace(envelope.Message)
	}
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}
