package api

import (
	"time"

	models "github.com/ciphernom/rektcast/internal/domain/models"
	domsvc "github.com/ciphernom/rektcast/internal/domain/service"
	"github.com/ciphernom/rektcast/internal/service/metrics"
	"github.com/ciphernom/rektcast/internal/service/ratelimit"
	"github.com/ciphernom/rektcast/internal/usecase"
	pkgcache "github.com/ciphernom/rektcast/pkg/cache"
	xhttp "github.com/ciphernom/rektcast/pkg/http"
	xlogger "github.com/ciphernom/rektcast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler exposes the forecast, sentiment, fundamentals and
// regime endpoints over Echo.
type ForecastEchoHandler struct {
	logger   *xlogger.Logger
	forecast domsvc.ForecastService
	sent     domsvc.SentimentService
	fund     domsvc.FundamentalsService
	regime   domsvc.RegimeService
	history  *usecase.HistoryUseCase
	cache    pkgcache.Service
	rl       *ratelimit.Limiter
}

func NewForecastEchoHandler(
	logger *xlogger.Logger,
	forecast domsvc.ForecastService,
	sent domsvc.SentimentService,
	fund domsvc.FundamentalsService,
	regime domsvc.RegimeService,
	history *usecase.HistoryUseCase,
) *ForecastEchoHandler {
	metrics.Register()
	return &ForecastEchoHandler{
		logger:   logger,
		forecast: forecast,
		sent:     sent,
		fund:     fund,
		regime:   regime,
		history:  history,
		rl:       ratelimit.New(),
	}
}

// SetCache injects the response cache.
func (h *ForecastEchoHandler) SetCache(c pkgcache.Service) { h.cache = c }

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/forecast", h.Forecast)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/fundamentals", h.Fundamentals)
	g.GET("/regime", h.Regime)
	g.GET("/history", h.History)
}

func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	start := time.Now()
	endpoint := "forecast"
	defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":forecast", 5, 1) {
		return echo.NewHTTPError(429, "rate limited")
	}

	cacheKey := cacheKeyForecast(req)
	ctx := c.Request().Context()
	if h.cache != nil {
		var cached models.ForecastResult
		if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
			return xhttp.SuccessResponse(c, &cached)
		}
	}

	res, err := h.forecast.Forecast(ctx, *req)
	if err != nil {
		metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, res, 5*time.Minute); err != nil {
			h.logger.Warn("forecast cache set failed", xlogger.Error(err))
		}
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	endpoint := "sentiment"
	defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":sentiment", 10, 2) {
		return echo.NewHTTPError(429, "rate limited")
	}

	res, err := h.sent.Analyze(c.Request().Context(), req.Top)
	if err != nil {
		metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("sentiment usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Fundamentals(c echo.Context) error {
	start := time.Now()
	endpoint := "fundamentals"
	defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.FundamentalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	asOf := time.Now().UTC()
	if req.Date != "" {
		parsed, ok := xhttp.ParseTime(req.Date)
		if !ok {
			return xhttp.BadRequestResponse(c, "date must be RFC3339 or YYYY-MM-DD")
		}
		asOf = parsed
	}

	res, err := h.fund.Compute(c.Request().Context(), asOf)
	if err != nil {
		metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("fundamentals usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Regime(c echo.Context) error {
	start := time.Now()
	endpoint := "regime"
	defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.RegimeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":regime", 5, 2) {
		return echo.NewHTTPError(429, "rate limited")
	}

	res, err := h.regime.Current(c.Request().Context(), req.Lookback)
	if err != nil {
		metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("regime usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) History(c echo.Context) error {
	start := time.Now()
	endpoint := "history"
	defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	from := xhttp.ParseTimeDefault(c.QueryParam("from"), time.Time{})
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), time.Now().UTC())
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 0)

	res, err := h.history.GetHistory(c.Request().Context(), usecase.GetHistoryParams{
		From:  from,
		To:    to,
		Limit: limit,
	})
	if err != nil {
		metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func cacheKeyForecast(req *models.ForecastRequest) string {
	return "forecast:" + itoa(req.Days) + ":" + itoa(req.Paths)
}
