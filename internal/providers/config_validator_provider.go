package providers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gookit/validate"

	"pad/internal/structures"
)

var reportLocales = map[string]struct{}{
	"en_US": {},
	"zh_CN": {},
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	// Checks the tag language cannot express.
	if cv.conf.Report.Enabled {
		if _, err := time.Parse("15:04", cv.conf.Report.Time); err != nil {
			return fmt.Errorf("report.time must be HH:mm: %w", err)
		}
		if cv.conf.Report.Dir == "" {
			return errors.New("report.dir is required when report is enabled")
		}
		if _, ok := reportLocales[cv.conf.Report.Locale]; !ok {
			return fmt.Errorf("report.locale %q is not supported", cv.conf.Report.Locale)
		}
		if cv.conf.Report.RetentionEnabled && cv.conf.Report.RetentionDays < 1 {
			return errors.New("report.retentionDays must be at least 1 day")
		}
	}
	return nil
}
