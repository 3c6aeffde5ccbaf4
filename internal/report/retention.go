package report

import (
	"os"
	"path/filepath"
	"regexp"

	"pad/internal/models"
	"pad/internal/providers"
)

var artifactNameRe = regexp.MustCompile(`^report-(\d{4}-\d{2}-\d{2})\.html$`)

// CleanupOldReports deletes artifacts older than the retention window.
// The date is taken from the file name; anything that does not parse is
// left untouched — never delete on ambiguity.
func (r *Renderer) CleanupOldReports() {
	entries, err := os.ReadDir(r.config.Report.Dir)
	if err != nil {
		r.logger.Warnf(providers.TypeApp, "Cannot scan report directory: %s", err)
		return
	}

	cutoff := r.clock.Now().AddDate(0, 0, -r.config.Report.RetentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := artifactNameRe.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		date, err := models.ParseDayKey(match[1])
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			continue
		}
		path := filepath.Join(r.config.Report.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			r.logger.Warnf(providers.TypeApp, "Cannot delete old report %s: %s", path, err)
			continue
		}
		r.logger.Infof(providers.TypeApp, "Deleted old report %s", path)
	}
}
