package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Status)
	rg.PUT("", h.Update)
	rg.POST("/test", h.SendTest)
}

// Status returns the reminder preference and next scheduled reminder
func (h *NotificationHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	status, err := h.svc.Status(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *NotificationHandler) Update(c *gin.Context) {
	var req dto.UpdateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	status, err := h.svc.SetEnabled(ctx, *req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *NotificationHandler) SendTest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	n, err := h.svc.SendTest(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, n)
}
