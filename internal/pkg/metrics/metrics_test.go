package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeStat struct{ acquired, idle, total int32 }

func (f fakeStat) AcquiredConns() int32 { return f.acquired }
func (f fakeStat) IdleConns() int32     { return f.idle }
func (f fakeStat) TotalConns() int32    { return f.total }

func TestUpdateDBPoolMetrics(t *testing.T) {
	UpdateDBPoolMetrics(fakeStat{acquired: 3, idle: 7, total: 10})

	if got := testutil.ToFloat64(DBPoolConnsAcquired); got != 3 {
		t.Errorf("expected 3 acquired, got %v", got)
	}
	if got := testutil.ToFloat64(DBPoolConnsIdle); got != 7 {
		t.Errorf("expected 7 idle, got %v", got)
	}
	if got := testutil.ToFloat64(DBPoolConnsOpen); got != 10 {
		t.Errorf("expected 10 open, got %v", got)
	}
}

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(Middleware())
	app.Get("/search", func(c *fiber.Ctx) error { return c.SendString("[]") })
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/search", "200"))
	for i := 0; i < 3; i++ {
		if _, err := app.Test(httptest.NewRequest("GET", "/search?q=Boston", nil), -1); err != nil {
			t.Fatal(err)
		}
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/search", "200"))
	if after-before != 3 {
		t.Errorf("expected 3 counted requests, got %v", after-before)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "mashup_http_requests_total") {
		t.Error("expected mashup_http_requests_total in exposition")
	}
}
