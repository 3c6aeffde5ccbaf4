package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pad/internal/controllers"
	"pad/internal/providers"
	"pad/internal/structures"
	"pad/internal/testutil"
)

func newRoutesController(t *testing.T) *controllers.ApiController {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local))
	conf := &structures.Config{}
	conf.Tracker.WindowDays = 30

	return controllers.NewApiController(
		&testutil.MockLogger{},
		&testutil.MockActivityService{},
		&testutil.MockCache{},
		&testutil.MockMetrics{},
		providers.NewClockProvider(clock),
		&testutil.MockRenderer{},
		conf,
	)
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	router := InitRoutes(newRoutesController(t), &structures.Config{})
	routes := router.GetRoutes()
	require.Len(t, routes, 7)

	urls := make([]string, 0, len(routes))
	for _, r := range routes {
		urls = append(urls, r.Url)
	}
	assert.ElementsMatch(t, []string{
		"/event/login",
		"/event/quit",
		"/event/switch",
		"/event/online",
		"/player",
		"/summary",
		"/report/generate",
	}, urls)
}

func TestInitRoutes_EventRoutesArePostOnly(t *testing.T) {
	router := InitRoutes(newRoutesController(t), &structures.Config{})

	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}

	req := httptest.NewRequest(http.MethodGet, "/event/login", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_SummaryIsGetOnly(t *testing.T) {
	router := InitRoutes(newRoutesController(t), &structures.Config{})

	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}

	req := httptest.NewRequest(http.MethodPost, "/summary", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
