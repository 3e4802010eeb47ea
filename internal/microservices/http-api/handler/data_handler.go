package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/service"
)

// imports can carry a full reading history
const importTimeout = 30 * time.Second

type DataHandler struct {
	svc service.DataService
}

func NewDataHandler(svc service.DataService) *DataHandler {
	return &DataHandler{svc: svc}
}

func (h *DataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
	rg.DELETE("", h.Clear)
}

func (h *DataHandler) Export(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	payload, err := h.svc.Export(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "bookplanner-"+payload.ExportDate[:min(10, len(payload.ExportDate))]+".json"))
	}
	c.JSON(http.StatusOK, payload)
}

func (h *DataHandler) Import(c *gin.Context) {
	var payload dto.ExportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), importTimeout)
	defer cancel()

	summary, err := h.svc.Import(ctx, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DataHandler) Clear(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.ClearAll(ctx); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
