package services

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"pad/internal/models"
)

type ActivityServiceInterface interface {
	RecordLogin(uuid, username string) *models.PlayerRecord
	RecordQuit(uuid string, sessionSeconds int64) bool
	RecordServerTransfer(uuid, toServer string) bool
	UpdateHistoricalPeak(currentOnline int)
	UpdateSubServerPeak(serverName string, currentOnline int)
	GetPlayer(uuid string) (*models.PlayerRecord, bool)
	PlayerCount() int
	HistoricalPeak() int
	Snapshot() *models.RootAggregate
	Restore(agg *models.RootAggregate)
	MarkReportGenerated(t time.Time)
	MarkDirty()
	ConsumeDirty() bool
}

// ActivityService owns the root aggregate. Every public operation runs
// under one mutex because most of them touch several nested fields that
// must change together (list append + counter increment, watermark pairs).
type ActivityService struct {
	mu     sync.Mutex
	clock  quartz.Clock
	agg    *models.RootAggregate
	byUUID map[string]*models.PlayerRecord
	nextID int
	dirty  bool
}

func NewActivityService(clock quartz.Clock) ActivityServiceInterface {
	svc := &ActivityService{clock: clock}
	svc.Restore(models.NewRootAggregate())
	return svc
}

// Restore replaces the whole aggregate, normalizes it and rebuilds the
// identity index and id sequence. On a first boot the startup time is
// stamped here and never overwritten afterwards.
func (as *ActivityService) Restore(agg *models.RootAggregate) {
	as.mu.Lock()
	defer as.mu.Unlock()

	agg.Normalize()
	as.agg = agg
	as.byUUID = make(map[string]*models.PlayerRecord, len(agg.PlayerData))
	for _, p := range agg.PlayerData {
		as.byUUID[p.UUID] = p
	}
	as.nextID = agg.NextID()
	if agg.ServerInfo.StartupTime.IsZero() {
		agg.ServerInfo.StartupTime = models.NewTimestamp(as.clock.Now())
		as.dirty = true
	}
}

func (as *ActivityService) RecordLogin(uuid, username string) *models.PlayerRecord {
	as.mu.Lock()
	defer as.mu.Unlock()

	now := as.clock.Now()
	ts := models.NewTimestamp(now)
	day := models.DayKey(now)

	p, ok := as.byUUID[uuid]
	if !ok {
		p = &models.PlayerRecord{
			ID:               as.nextID,
			UUID:             uuid,
			Username:         username,
			FirstJoinTime:    ts,
			DailyServerPaths: make(map[string][]*models.PathEntry),
		}
		as.nextID++
		as.agg.PlayerData = append(as.agg.PlayerData, p)
		as.byUUID[uuid] = p

		newcomers := as.agg.ServerTracking.DailyNewPlayers[day]
		if newcomers == nil {
			newcomers = &models.DayNewPlayers{Players: make([]*models.NewPlayerEntry, 0, 1)}
			as.agg.ServerTracking.DailyNewPlayers[day] = newcomers
		}
		newcomers.Players = append(newcomers.Players, &models.NewPlayerEntry{UUID: uuid, Time: ts})
		newcomers.Overall = len(newcomers.Players)
	}

	p.Username = username
	p.LastLoginTime = ts
	as.dirty = true
	return p.Clone()
}

// RecordQuit reports whether the identity was known. Negative durations
// are clamped to zero.
func (as *ActivityService) RecordQuit(uuid string, sessionSeconds int64) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	p, ok := as.byUUID[uuid]
	if !ok {
		return false
	}
	if sessionSeconds < 0 {
		sessionSeconds = 0
	}
	p.PlayTime += models.PlayTime(sessionSeconds)
	p.LastQuitTime = models.NewTimestamp(as.clock.Now())
	as.dirty = true
	return true
}

// RecordServerTransfer appends a path entry for today, deriving the origin
// from the previous entry. A transfer to the server the player is already
// on is suppressed. Reports whether the identity was known.
func (as *ActivityService) RecordServerTransfer(uuid, toServer string) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	p, ok := as.byUUID[uuid]
	if !ok {
		return false
	}

	now := as.clock.Now()
	day := models.DayKey(now)
	path := p.DailyServerPaths[day]

	from := models.UnknownServer
	if len(path) > 0 {
		last := path[len(path)-1]
		if last.To == toServer {
			return true
		}
		from = last.To
	}
	p.DailyServerPaths[day] = append(path, &models.PathEntry{
		Time: models.NewTimestamp(now),
		From: from,
		To:   toServer,
	})
	as.dirty = true
	return true
}

func (as *ActivityService) UpdateHistoricalPeak(currentOnline int) {
	as.mu.Lock()
	defer as.mu.Unlock()

	peak := as.dayPeakLocked(models.DayKey(as.clock.Now()))
	if currentOnline > peak.Overall {
		peak.Overall = currentOnline
		as.dirty = true
	}
	if currentOnline > as.agg.ServerTracking.HistoricalPeakOnline {
		as.agg.ServerTracking.HistoricalPeakOnline = currentOnline
		as.dirty = true
	}
}

func (as *ActivityService) UpdateSubServerPeak(serverName string, currentOnline int) {
	as.mu.Lock()
	defer as.mu.Unlock()

	peak := as.dayPeakLocked(models.DayKey(as.clock.Now()))
	sub := peak.Sub(serverName)
	if sub == nil {
		peak.SubServer = append(peak.SubServer, &models.SubServerPeak{
			ServerName: serverName,
			PeakOnline: currentOnline,
		})
		as.dirty = true
		return
	}
	if currentOnline > sub.PeakOnline {
		sub.PeakOnline = currentOnline
		as.dirty = true
	}
}

func (as *ActivityService) dayPeakLocked(day string) *models.DayPeak {
	peak := as.agg.ServerTracking.DailyPeakOnline[day]
	if peak == nil {
		peak = &models.DayPeak{SubServer: make([]*models.SubServerPeak, 0)}
		as.agg.ServerTracking.DailyPeakOnline[day] = peak
	}
	return peak
}

func (as *ActivityService) GetPlayer(uuid string) (*models.PlayerRecord, bool) {
	as.mu.Lock()
	defer as.mu.Unlock()

	p, ok := as.byUUID[uuid]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (as *ActivityService) PlayerCount() int {
	as.mu.Lock()
	defer as.mu.Unlock()
	return len(as.agg.PlayerData)
}

func (as *ActivityService) HistoricalPeak() int {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.agg.ServerTracking.HistoricalPeakOnline
}

// Snapshot returns a deep copy. Serialization and disk writes happen
// outside the lock.
func (as *ActivityService) Snapshot() *models.RootAggregate {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.agg.Clone()
}

func (as *ActivityService) MarkReportGenerated(t time.Time) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.agg.ServerInfo.LastReportGenerationTime = models.NewTimestamp(t)
	as.dirty = true
}

func (as *ActivityService) MarkDirty() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.dirty = true
}

// ConsumeDirty reports whether the aggregate changed since the last call
// and clears the flag. A failed save puts it back via MarkDirty.
func (as *ActivityService) ConsumeDirty() bool {
	as.mu.Lock()
	defer as.mu.Unlock()
	d := as.dirty
	as.dirty = false
	return d
}
