package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"pad/internal/models"
	"pad/internal/providers"
	"pad/internal/services"
	"pad/internal/structures"
)

type RendererInterface interface {
	Generate() error
	CleanupOldReports()
}

// Renderer produces one HTML artifact per cycle from a snapshot of the
// activity store. A failed cycle leaves the store and any previous
// artifacts untouched.
type Renderer struct {
	config  *structures.Config
	logger  providers.Logger
	service services.ActivityServiceInterface
	clock   providers.ClockProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewRenderer(config *structures.Config, logger providers.Logger, service services.ActivityServiceInterface, clock providers.ClockProviderInterface, metrics providers.MetricsProviderInterface) RendererInterface {
	return &Renderer{
		config:  config,
		logger:  logger,
		service: service,
		clock:   clock,
		metrics: metrics,
	}
}

type pageData struct {
	AppName string
	Date    string
	Summary *Summary
	Payload template.JS
}

func (r *Renderer) Generate() error {
	start := time.Now()
	now := r.clock.Now()
	day := models.DayKey(now)

	tpl, err := templateFor(r.config.Report.Locale)
	if err != nil {
		return fmt.Errorf("cannot load report template: %w", err)
	}

	snapshot := r.service.Snapshot()
	summary := Compute(snapshot, now, OptionsFromConfig(r.config))

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("cannot encode report payload: %w", err)
	}

	var buf bytes.Buffer
	err = tpl.Execute(&buf, pageData{
		AppName: r.config.AppName,
		Date:    day,
		Summary: summary,
		Payload: template.JS(payload),
	})
	if err != nil {
		return fmt.Errorf("cannot render report template: %w", err)
	}

	if err := os.MkdirAll(r.config.Report.Dir, 0755); err != nil {
		return fmt.Errorf("cannot create report directory: %w", err)
	}
	path := filepath.Join(r.config.Report.Dir, ArtifactName(day))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write report artifact: %w", err)
	}

	r.service.MarkReportGenerated(now)
	r.metrics.ObserveReportDuration(time.Since(start))
	r.logger.Infof(providers.TypeApp, "Report written to %s", path)
	return nil
}

// ArtifactName returns the report file name for a day key.
func ArtifactName(day string) string {
	return "report-" + day + ".html"
}
