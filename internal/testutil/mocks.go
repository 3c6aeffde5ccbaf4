package testutil

import (
	"sync"
	"time"

	"pad/internal/models"
	"pad/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether at least one entry with the level was logged.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu               sync.Mutex
	Events           map[string]int
	CacheHits        int
	CacheMisses      int
	PersistenceCalls int
	ReportCalls      int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncEventsTotal(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Events == nil {
		m.Events = make(map[string]int)
	}
	m.Events[event]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}

func (m *MockMetrics) ObserveReportDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportCalls++
}

// MockCompressor is a pass-through tracking/interfaces.CompressorInterface.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
	Closed        bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockCache implements providers.CacheProviderInterface on a plain map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Data == nil {
		m.Data = make(map[string][]byte)
	}
	m.Data[key] = value
}

// MockRenderer implements report.RendererInterface and records calls.
type MockRenderer struct {
	mu            sync.Mutex
	GenerateErr   error
	GenerateCalls int
	CleanupCalls  int
}

func (m *MockRenderer) Generate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls++
	return m.GenerateErr
}

func (m *MockRenderer) CleanupOldReports() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CleanupCalls++
}

func (m *MockRenderer) Generated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GenerateCalls
}

// MockActivityService implements services.ActivityServiceInterface.
type MockActivityService struct {
	mu            sync.Mutex
	Agg           *models.RootAggregate
	Logins        []string
	Quits         []string
	Transfers     []string
	PeakSamples   []int
	SubPeaks      map[string]int
	KnownPlayers  map[string]*models.PlayerRecord
	ReportMarks   []time.Time
	RestoreCalls  []*models.RootAggregate
	DirtyState    bool
	HistoricalMax int
}

func (m *MockActivityService) RecordLogin(uuid, username string) *models.PlayerRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logins = append(m.Logins, uuid)
	return &models.PlayerRecord{UUID: uuid, Username: username}
}

func (m *MockActivityService) RecordQuit(uuid string, _ int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Quits = append(m.Quits, uuid)
	_, ok := m.KnownPlayers[uuid]
	return ok
}

func (m *MockActivityService) RecordServerTransfer(uuid, _ string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transfers = append(m.Transfers, uuid)
	_, ok := m.KnownPlayers[uuid]
	return ok
}

func (m *MockActivityService) UpdateHistoricalPeak(currentOnline int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PeakSamples = append(m.PeakSamples, currentOnline)
	if currentOnline > m.HistoricalMax {
		m.HistoricalMax = currentOnline
	}
}

func (m *MockActivityService) UpdateSubServerPeak(serverName string, currentOnline int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubPeaks == nil {
		m.SubPeaks = make(map[string]int)
	}
	if currentOnline > m.SubPeaks[serverName] {
		m.SubPeaks[serverName] = currentOnline
	}
}

func (m *MockActivityService) GetPlayer(uuid string) (*models.PlayerRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.KnownPlayers[uuid]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (m *MockActivityService) PlayerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.KnownPlayers)
}

func (m *MockActivityService) HistoricalPeak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HistoricalMax
}

func (m *MockActivityService) Snapshot() *models.RootAggregate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Agg == nil {
		return models.NewRootAggregate()
	}
	return m.Agg.Clone()
}

func (m *MockActivityService) Restore(agg *models.RootAggregate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg.Normalize()
	m.Agg = agg
	m.RestoreCalls = append(m.RestoreCalls, agg)
}

func (m *MockActivityService) MarkReportGenerated(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportMarks = append(m.ReportMarks, t)
}

func (m *MockActivityService) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DirtyState = true
}

func (m *MockActivityService) ConsumeDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.DirtyState
	m.DirtyState = false
	return d
}
