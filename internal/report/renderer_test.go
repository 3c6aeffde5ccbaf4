package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pad/internal/providers"
	"pad/internal/services"
	"pad/internal/structures"
	"pad/internal/testutil"
)

type rendererFixture struct {
	renderer *Renderer
	service  services.ActivityServiceInterface
	clock    *quartz.Mock
	logger   *testutil.MockLogger
	config   *structures.Config
}

func newRendererFixture(t *testing.T) *rendererFixture {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2026, 8, 30, 3, 0, 0, 0, time.Local))

	config := &structures.Config{AppName: "PlayerActivityDaemon"}
	config.Report.Enabled = true
	config.Report.Dir = t.TempDir()
	config.Report.Locale = "en_US"
	config.Report.RetentionDays = 60
	config.Tracker.WindowDays = 7
	config.Tracker.CoreActiveDays = 2
	config.Tracker.AtRiskDays = 14
	config.Tracker.TopN = 10

	service := services.NewActivityService(clock)
	logger := &testutil.MockLogger{}
	r := NewRenderer(config, logger, service, providers.NewClockProvider(clock), &testutil.MockMetrics{}).(*Renderer)
	return &rendererFixture{renderer: r, service: service, clock: clock, logger: logger, config: config}
}

func TestRenderer_GenerateWritesArtifact(t *testing.T) {
	fx := newRendererFixture(t)
	fx.service.RecordLogin("11111111-1111-1111-1111-111111111111", "Alice")
	fx.service.UpdateHistoricalPeak(8)

	require.NoError(t, fx.renderer.Generate())

	path := filepath.Join(fx.config.Report.Dir, ArtifactName("2026-08-30"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "PlayerActivityDaemon")
	assert.Contains(t, html, "2026-08-30")
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "window.__PAD_DATA__")
	assert.Contains(t, html, `"historical_peak":8`)
}

func TestRenderer_GenerateMarksReportTime(t *testing.T) {
	fx := newRendererFixture(t)
	require.NoError(t, fx.renderer.Generate())

	mark := fx.service.Snapshot().ServerInfo.LastReportGenerationTime
	assert.Equal(t, "2026-08-30 03:00:00", mark.String())
}

func TestRenderer_GenerateCreatesDirectory(t *testing.T) {
	fx := newRendererFixture(t)
	fx.config.Report.Dir = filepath.Join(t.TempDir(), "nested", "reports")

	require.NoError(t, fx.renderer.Generate())
	_, err := os.Stat(filepath.Join(fx.config.Report.Dir, ArtifactName("2026-08-30")))
	assert.NoError(t, err)
}

func TestRenderer_UnknownLocaleFallsBack(t *testing.T) {
	fx := newRendererFixture(t)
	fx.config.Report.Locale = "fr_FR"

	require.NoError(t, fx.renderer.Generate())
	_, err := os.Stat(filepath.Join(fx.config.Report.Dir, ArtifactName("2026-08-30")))
	assert.NoError(t, err)
}

func TestRenderer_ChineseLocale(t *testing.T) {
	fx := newRendererFixture(t)
	fx.config.Report.Locale = "zh_CN"

	require.NoError(t, fx.renderer.Generate())
	data, err := os.ReadFile(filepath.Join(fx.config.Report.Dir, ArtifactName("2026-08-30")))
	require.NoError(t, err)
	assert.Contains(t, string(data), `lang="zh-CN"`)
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "report-2026-08-30.html", ArtifactName("2026-08-30"))
}

func TestCleanupOldReports(t *testing.T) {
	fx := newRendererFixture(t)
	fx.config.Report.RetentionDays = 30
	dir := fx.config.Report.Dir

	old := ArtifactName("2026-06-01")
	recent := ArtifactName("2026-08-29")
	odd := "report-notadate.html"
	unrelated := "notes.txt"
	for _, name := range []string{old, recent, odd, unrelated} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	fx.renderer.CleanupOldReports()

	_, err := os.Stat(filepath.Join(dir, old))
	assert.True(t, os.IsNotExist(err), "old artifact should be removed")
	for _, name := range []string{recent, odd, unrelated} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should survive", name)
	}
}

func TestCleanupOldReports_MissingDirIsHarmless(t *testing.T) {
	fx := newRendererFixture(t)
	fx.config.Report.Dir = filepath.Join(t.TempDir(), "gone")

	fx.renderer.CleanupOldReports()
	assert.True(t, fx.logger.HasLevel("warn"))
}
