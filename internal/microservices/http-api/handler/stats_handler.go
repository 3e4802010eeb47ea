package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/middleware"
	"bookplanner/internal/microservices/http-api/service"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Report)
	rg.GET("/speed", h.Speed)
}

func (h *StatsHandler) Report(c *gin.Context) {
	var query dto.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	report, err := h.svc.Report(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.MarkStale(c, report.Stale)
	c.JSON(http.StatusOK, report)
}

func (h *StatsHandler) Speed(c *gin.Context) {
	var query dto.SpeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.svc.Speed(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.MarkStale(c, resp.Stale)
	c.JSON(http.StatusOK, resp)
}
