package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perpfolio/internal/repository"
)

type SyncStateHandler struct {
	Repo repository.Repository
}

func (h *SyncStateHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/sync-states", h.list)
}

func (h *SyncStateHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListSyncStates(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
