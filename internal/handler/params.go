package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"perpfolio/internal/analytics"
)

func intQuery(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// timeRangeQuery reads the optional start/end bounds (Unix seconds). An
// absent or malformed bound stays nil, which the core treats as an open
// window.
func timeRangeQuery(c *gin.Context) analytics.TimeRange {
	var window analytics.TimeRange
	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			window.Start = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("end")); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			window.End = &v
		}
	}
	return window
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	return map[string]any{
		"limit":  limit,
		"offset": offset,
		"total":  total,
	}
}
