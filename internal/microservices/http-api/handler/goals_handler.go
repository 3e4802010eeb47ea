package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/middleware"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/service"
)

type GoalsHandler struct {
	svc service.GoalService
}

func NewGoalsHandler(svc service.GoalService) *GoalsHandler {
	return &GoalsHandler{svc: svc}
}

func (h *GoalsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.PUT("", h.Replace)
	rg.PATCH("/monthly", h.PatchMonthly)
	rg.PATCH("/weekly", h.PatchWeekly)
	rg.POST("/reset", h.Reset)
	rg.GET("/daily", h.Daily)
}

func (h *GoalsHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	goals, stale, err := h.svc.Get(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.MarkStale(c, stale)
	c.JSON(http.StatusOK, dto.GoalsResponse{Goals: goals, Stale: stale})
}

func (h *GoalsHandler) Replace(c *gin.Context) {
	var goals models.Goals
	if err := c.ShouldBindJSON(&goals); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	saved, err := h.svc.Update(ctx, goals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GoalsResponse{Goals: saved})
}

func (h *GoalsHandler) PatchMonthly(c *gin.Context) {
	h.patch(c, h.svc.UpdateMonthly)
}

func (h *GoalsHandler) PatchWeekly(c *gin.Context) {
	h.patch(c, h.svc.UpdateWeekly)
}

func (h *GoalsHandler) patch(c *gin.Context, apply func(context.Context, dto.GoalTargetPatch) (models.Goals, error)) {
	var req dto.GoalTargetPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	saved, err := apply(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GoalsResponse{Goals: saved})
}

func (h *GoalsHandler) Reset(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	goals, err := h.svc.Reset(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GoalsResponse{Goals: goals})
}

func (h *GoalsHandler) Daily(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	targets, err := h.svc.DailyTargets(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}
