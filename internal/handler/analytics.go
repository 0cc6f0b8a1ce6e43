package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"perpfolio/internal/service"
)

type AnalyticsHandler struct {
	Analytics *service.AnalyticsService
	Sync      *service.HistorySyncService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/accounts/:address")
	group.GET("/analytics", h.analytics)
	group.GET("/history", h.history)
	group.POST("/sync", h.sync)
}

func (h *AnalyticsHandler) analytics(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "analytics unavailable", nil)
		return
	}
	address := strings.TrimSpace(c.Param("address"))
	if address == "" {
		Error(c, http.StatusBadRequest, "address is required", nil)
		return
	}
	window := timeRangeQuery(c)
	bundle, err := h.Analytics.GetBundle(c.Request.Context(), address, window)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, bundle, nil)
}

func (h *AnalyticsHandler) history(c *gin.Context) {
	if h.Analytics == nil {
		Error(c, http.StatusInternalServerError, "analytics unavailable", nil)
		return
	}
	address := strings.TrimSpace(c.Param("address"))
	if address == "" {
		Error(c, http.StatusBadRequest, "address is required", nil)
		return
	}
	window := timeRangeQuery(c)
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, total, err := h.Analytics.ListHistory(c.Request.Context(), address, window, limit, offset)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *AnalyticsHandler) sync(c *gin.Context) {
	if h.Sync == nil {
		Error(c, http.StatusInternalServerError, "sync unavailable", nil)
		return
	}
	address := strings.TrimSpace(c.Param("address"))
	if address == "" {
		Error(c, http.StatusBadRequest, "address is required", nil)
		return
	}
	if err := h.Sync.SyncAddress(c.Request.Context(), address); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"address": address, "synced": true}, nil)
}
