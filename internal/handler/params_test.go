package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestTimeRangeQuery(t *testing.T) {
	c := ctxWithQuery(t, "start=1000&end=2000")
	window := timeRangeQuery(c)
	if window.Start == nil || *window.Start != 1000 {
		t.Fatalf("start = %v", window.Start)
	}
	if window.End == nil || *window.End != 2000 {
		t.Fatalf("end = %v", window.End)
	}
}

func TestTimeRangeQueryMalformedBoundStaysNil(t *testing.T) {
	c := ctxWithQuery(t, "start=tomorrow&end=2000")
	window := timeRangeQuery(c)
	if window.Start != nil {
		t.Fatalf("malformed start must stay nil")
	}
	if window.End == nil || *window.End != 2000 {
		t.Fatalf("end = %v", window.End)
	}
}

func TestIntQueryDefault(t *testing.T) {
	c := ctxWithQuery(t, "limit=abc")
	if got := intQuery(c, "limit", 50); got != 50 {
		t.Fatalf("intQuery fallback = %d, want 50", got)
	}
	c = ctxWithQuery(t, "limit=10")
	if got := intQuery(c, "limit", 50); got != 10 {
		t.Fatalf("intQuery = %d, want 10", got)
	}
}
