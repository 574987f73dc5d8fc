// Package api exposes the market intelligence HTTP surface.
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	models "KisanSense/internal/domain/models"
	dservice "KisanSense/internal/domain/service"
	"KisanSense/internal/service/ratelimit"
	"KisanSense/internal/usecase"
	xhttp "KisanSense/pkg/http"
	xlogger "KisanSense/pkg/logger"
)

// MarketHandler serves commodity listings, intelligence blocks,
// recommendations, weather, translation, and the manual sync trigger.
type MarketHandler struct {
	logger      *xlogger.Logger
	dashboard   *usecase.Dashboard
	recommender *usecase.Recommender
	weather     dservice.WeatherProvider
	translator  dservice.Translator
	sync        *usecase.PriceSync
	limiter     *ratelimit.Limiter
}

// NewMarketHandler creates the API handler. Weather, translator, and
// sync may be nil; their routes then answer 503.
func NewMarketHandler(
	logger *xlogger.Logger,
	dashboard *usecase.Dashboard,
	recommender *usecase.Recommender,
	weather dservice.WeatherProvider,
	translator dservice.Translator,
	sync *usecase.PriceSync,
) *MarketHandler {
	return &MarketHandler{
		logger:      logger,
		dashboard:   dashboard,
		recommender: recommender,
		weather:     weather,
		translator:  translator,
		sync:        sync,
		limiter:     ratelimit.New(),
	}
}

// RegisterRoutes mounts the API under /api.
func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/commodities", h.Commodities)
	g.GET("/markets", h.Markets)
	g.GET("/overview", h.Overview)
	g.GET("/intelligence", h.Intelligence)
	g.POST("/recommendation", h.Recommendation)
	g.GET("/weather", h.Weather)
	g.POST("/translate", h.Translate)
	g.POST("/sync", h.Sync)
}

func (h *MarketHandler) Health(c echo.Context) error {
	if err := h.dashboard.Health(c.Request().Context()); err != nil {
		h.logger.Warn("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("price store unreachable"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *MarketHandler) Commodities(c echo.Context) error {
	items, err := h.dashboard.Commodities(c.Request().Context())
	if err != nil {
		h.logger.Error("commodities query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, items, int64(len(items)))
}

func (h *MarketHandler) Markets(c echo.Context) error {
	req := &models.MarketsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	items, err := h.dashboard.Markets(c.Request().Context(), req.Commodity)
	if err != nil {
		h.logger.Error("markets query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, items, int64(len(items)))
}

func (h *MarketHandler) Overview(c echo.Context) error {
	items, err := h.dashboard.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("overview query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, items, int64(len(items)))
}

func (h *MarketHandler) Intelligence(c echo.Context) error {
	req := &models.IntelligenceQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	intel, err := h.dashboard.Intelligence(c.Request().Context(), req.Commodity, req.Market, req.Days)
	if err != nil {
		h.logger.Error("intelligence query failed",
			xlogger.String("commodity", req.Commodity),
			xlogger.String("market", req.Market),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, intel)
}

func (h *MarketHandler) Recommendation(c echo.Context) error {
	req := &models.RecommendationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.recommender.Recommend(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("recommendation failed",
			xlogger.String("commodity", req.Commodity),
			xlogger.String("market", req.Market),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *MarketHandler) Weather(c echo.Context) error {
	if h.weather == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("weather lookup is not configured"))
	}

	req := &models.WeatherQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	wc, err := h.weather.Current(c.Request().Context(), req.Location)
	if err != nil {
		h.logger.Warn("weather lookup failed",
			xlogger.String("location", req.Location), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("weather service unavailable"))
	}
	return xhttp.SuccessResponse(c, wc)
}

func (h *MarketHandler) Translate(c echo.Context) error {
	if h.translator == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("translation is not configured"))
	}

	req := &models.TranslateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// Repeated texts collapse into one upstream call via the
	// translator's singleflight group.
	results := make([]models.TranslatedText, len(req.Texts))
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.SetLimit(8)
	for i, text := range req.Texts {
		g.Go(func() error {
			out, ok := h.translator.Translate(ctx, text, req.TargetLang)
			results[i] = models.TranslatedText{Text: out, Translated: ok}
			return nil
		})
	}
	_ = g.Wait()

	return xhttp.SuccessResponse(c, models.TranslateResponse{
		TargetLang: req.TargetLang,
		Results:    results,
	})
}

// Sync triggers a full price sync. Rate limited: one call per ten
// minutes with a burst of two.
func (h *MarketHandler) Sync(c echo.Context) error {
	if h.sync == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("sync is not configured"))
	}
	if !h.limiter.Allow("manual-sync", 2, 1.0/600) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("sync already requested recently"))
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usecase.SyncTimeout)
		defer cancel()
		if err := h.sync.Run(ctx); err != nil {
			h.logger.Error("manual sync failed", xlogger.Error(err))
		}
	}()

	return xhttp.SuccessResponse(c, map[string]string{"status": "sync started"})
}
