package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"pad/internal/providers"
	"pad/internal/report"
	"pad/internal/services"
	"pad/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// maxSummaryWindowDays bounds the days query override; anything larger
// produces one DailyPoint per day and a fresh cache entry per value.
const maxSummaryWindowDays = 366

type ApiController struct {
	logger   providers.Logger
	service  services.ActivityServiceInterface
	cache    providers.CacheProviderInterface
	metrics  providers.MetricsProviderInterface
	clock    providers.ClockProviderInterface
	renderer report.RendererInterface
	config   *structures.Config
}

func NewApiController(logger providers.Logger, service services.ActivityServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, clock providers.ClockProviderInterface, renderer report.RendererInterface, config *structures.Config) *ApiController {
	return &ApiController{
		logger:   logger,
		service:  service,
		cache:    cache,
		metrics:  metrics,
		clock:    clock,
		renderer: renderer,
		config:   config,
	}
}

type loginEvent struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type quitEvent struct {
	UUID           string `json:"uuid"`
	SessionSeconds int64  `json:"session_seconds"`
}

type switchEvent struct {
	UUID              string `json:"uuid"`
	Server            string `json:"server"`
	HadPreviousServer bool   `json:"had_previous_server"`
}

type onlineEvent struct {
	Total     int            `json:"total"`
	PerServer map[string]int `json:"per_server"`
}

func (ac *ApiController) decodeEvent(w http.ResponseWriter, r *http.Request, payload any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func validIdentity(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginEvent
	if !ac.decodeEvent(w, r, &payload) {
		return
	}
	if !validIdentity(payload.UUID) || payload.Name == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.RecordLogin(payload.UUID, payload.Name)
	ac.metrics.IncEventsTotal("login")
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) Quit(w http.ResponseWriter, r *http.Request) {
	var payload quitEvent
	if !ac.decodeEvent(w, r, &payload) {
		return
	}
	if !validIdentity(payload.UUID) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !ac.service.RecordQuit(payload.UUID, payload.SessionSeconds) {
		ac.logger.Warnf(providers.TypePost, "Quit event for unknown player %s", payload.UUID)
	}
	ac.metrics.IncEventsTotal("quit")
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) Switch(w http.ResponseWriter, r *http.Request) {
	var payload switchEvent
	if !ac.decodeEvent(w, r, &payload) {
		return
	}
	if !validIdentity(payload.UUID) || payload.Server == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !ac.service.RecordServerTransfer(payload.UUID, payload.Server) {
		ac.logger.Warnf(providers.TypePost, "Transfer event for unknown player %s", payload.UUID)
	}
	ac.metrics.IncEventsTotal("switch")
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) Online(w http.ResponseWriter, r *http.Request) {
	var payload onlineEvent
	if !ac.decodeEvent(w, r, &payload) {
		return
	}
	if payload.Total < 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.UpdateHistoricalPeak(payload.Total)
	for server, count := range payload.PerServer {
		if server == "" || count < 0 {
			continue
		}
		ac.service.UpdateSubServerPeak(server, count)
	}
	ac.metrics.IncEventsTotal("online")
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("uuid")
	if !validIdentity(id) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	player, ok := ac.service.GetPlayer(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, player)
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	opts := report.OptionsFromConfig(ac.config)
	if days := cast.ToInt(r.URL.Query().Get("days")); days > 0 {
		opts.WindowDays = min(days, maxSummaryWindowDays)
	}
	cacheKey := "summary:" + cast.ToString(opts.WindowDays)
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		return report.Compute(ac.service.Snapshot(), ac.clock.Now(), opts), nil
	})
}

func (ac *ApiController) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if err := ac.renderer.Generate(); err != nil {
		ac.logger.Errorf(providers.TypePost, "Manual report generation failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		ac.metrics.IncCacheHits()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	ac.metrics.IncCacheMisses()

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, value any) {
	gson, err := json.Marshal(value)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
