package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pad/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/pad/activity.json",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Report: structures.ReportConfig{
			Enabled:          true,
			Time:             "03:00",
			Dir:              "/tmp/reports",
			Locale:           "en_US",
			RetentionEnabled: true,
			RetentionDays:    60,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BadReportTime(t *testing.T) {
	for _, bad := range []string{"25:00", "3am", "0300", ""} {
		c := validConfig()
		c.Report.Time = bad
		v := NewCnfValidator(c)
		assert.Error(t, v.Validate(), "time %q", bad)
	}
}

func TestConfigValidator_ReportTimeIgnoredWhenDisabled(t *testing.T) {
	c := validConfig()
	c.Report.Enabled = false
	c.Report.Time = "not a time"
	v := NewCnfValidator(c)
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyReportDir(t *testing.T) {
	c := validConfig()
	c.Report.Dir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnsupportedLocale(t *testing.T) {
	c := validConfig()
	c.Report.Locale = "de_DE"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_SupportedLocales(t *testing.T) {
	for locale := range reportLocales {
		c := validConfig()
		c.Report.Locale = locale
		v := NewCnfValidator(c)
		assert.NoError(t, v.Validate(), "locale %s", locale)
	}
}

func TestConfigValidator_ZeroRetentionDays(t *testing.T) {
	c := validConfig()
	c.Report.RetentionDays = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_RetentionDaysIgnoredWhenRetentionDisabled(t *testing.T) {
	c := validConfig()
	c.Report.RetentionEnabled = false
	c.Report.RetentionDays = 0
	v := NewCnfValidator(c)
	assert.NoError(t, v.Validate())
}
