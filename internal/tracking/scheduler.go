package tracking

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"pad/internal/providers"
	"pad/internal/report"
	"pad/internal/services"
	"pad/internal/structures"
	"pad/internal/tracking/interfaces"
)

// Scheduler owns the two background jobs: the save-interval flush and the
// daily report cycle. opsMu keeps persistence, report generation and the
// shutdown flush from interleaving.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.ActivityServiceInterface
	fileManager *FileManager
	renderer    report.RendererInterface
	cron        *cron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = cron.New()

	interval := s.config.Persistence.SaveInterval
	_, err := s.cron.AddFunc("@every "+interval.String(), s.persistTick)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Cannot schedule persistence job: %s", err)
	}

	if s.config.Report.Enabled {
		spec, err := dailySpec(s.config.Report.Time)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Invalid report time %q: %s", s.config.Report.Time, err)
		} else if _, err := s.cron.AddFunc(spec, s.reportTick); err != nil {
			s.logger.Errorf(providers.TypeApp, "Cannot schedule report job: %s", err)
		} else {
			s.logger.Infof(providers.TypeApp, "Daily report scheduled at %s", s.config.Report.Time)
		}
	}

	s.cron.Start()
}

func (s *Scheduler) persistTick() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if !s.service.ConsumeDirty() {
		return
	}
	if err := s.fileManager.SaveToFile(s.config.Persistence.FilePath); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		// The aggregate stays authoritative in memory; retry next tick.
		s.service.MarkDirty()
		return
	}
	s.logger.Debugf(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
}

// reportTick runs one report cycle. Any failure, including a panic in the
// renderer, is logged and absorbed so the next scheduled run still fires.
func (s *Scheduler) reportTick() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf(providers.TypeApp, "Report cycle panicked: %v", r)
		}
	}()

	if err := s.renderer.Generate(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Report cycle failed: %s", err)
		return
	}
	if s.config.Report.RetentionEnabled {
		s.renderer.CleanupOldReports()
	}
}

// Stop cancels the timers and waits for a job already in flight to
// complete. No partial state exists afterwards by construction.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath, s.backupPath())
}

// Persist is the shutdown flush: the main document plus the compressed
// backup used for load-time recovery.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting activity data to file...")
	if err := s.fileManager.SaveToFile(s.config.Persistence.FilePath); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	if err := s.fileManager.SaveBackup(s.backupPath()); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
	}
	return nil
}

// Close releases the persistence resources after the final flush.
func (s *Scheduler) Close() {
	s.fileManager.Close()
}

func (s *Scheduler) backupPath() string {
	if s.config.Persistence.BackupPath != "" {
		return s.config.Persistence.BackupPath
	}
	return s.config.Persistence.FilePath + ".zst"
}

// dailySpec converts "HH:mm" into a cron expression firing once per day.
func dailySpec(hhmm string) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.ActivityServiceInterface, fileManager *FileManager, renderer report.RendererInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		renderer:    renderer,
	}
}
