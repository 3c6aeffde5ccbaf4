package tracking

import (
	"os"
	"time"

	json "github.com/goccy/go-json"

	"pad/internal/models"
	"pad/internal/providers"
	"pad/internal/services"
	"pad/internal/tracking/interfaces"
)

// FileManager translates the root aggregate to and from the persisted
// JSON document. Loading never fails the process: a missing file is a
// first run, anything unreadable falls back to the compressed backup and
// then to an empty default.
type FileManager struct {
	service    services.ActivityServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.ActivityServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
		metrics:    metrics,
	}
}

// SaveToFile writes the full aggregate snapshot. The snapshot is taken
// under the store lock; marshaling and I/O happen outside it.
func (f *FileManager) SaveToFile(fileName string) error {
	start := time.Now()
	snapshot := f.service.Snapshot()

	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if err := writeFileAtomic(fileName, jsonData, 0644); err != nil {
		return err
	}
	f.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// SaveBackup writes a zstd-compressed copy of the aggregate, used as the
// load-time recovery source when the main document is corrupt.
func (f *FileManager) SaveBackup(fileName string) error {
	snapshot := f.service.Snapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	compressed, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return writeFileAtomic(fileName, compressed, 0644)
}

// LoadFromFile restores the aggregate from disk. Recovery order: main
// document, compressed backup, empty default. Always succeeds — the
// process must start even after data loss.
func (f *FileManager) LoadFromFile(fileName, backupName string) error {
	data, err := os.ReadFile(fileName)
	switch {
	case err == nil:
		var agg models.RootAggregate
		if jsonErr := json.Unmarshal(data, &agg); jsonErr == nil {
			f.service.Restore(&agg)
			return nil
		}
		f.logger.Warnf(providers.TypeApp, "Activity document %s is corrupt, trying backup", fileName)
	case os.IsNotExist(err):
		f.logger.Infof(providers.TypeApp, "No activity document at %s, starting fresh", fileName)
		f.service.Restore(models.NewRootAggregate())
		return nil
	default:
		f.logger.Warnf(providers.TypeApp, "Cannot read activity document %s: %s", fileName, err)
	}

	if agg, ok := f.loadBackup(backupName); ok {
		f.logger.Warnf(providers.TypeApp, "Recovered activity data from backup %s", backupName)
		f.service.Restore(agg)
		return nil
	}

	f.logger.Warnf(providers.TypeApp, "Recovery failed, starting with an empty dataset")
	f.service.Restore(models.NewRootAggregate())
	return nil
}

func (f *FileManager) loadBackup(backupName string) (*models.RootAggregate, bool) {
	data, err := os.ReadFile(backupName)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warnf(providers.TypeApp, "Cannot read backup %s: %s", backupName, err)
		}
		return nil, false
	}
	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Cannot decompress backup %s: %s", backupName, err)
		return nil, false
	}
	var agg models.RootAggregate
	if err := json.Unmarshal(decompressed, &agg); err != nil {
		f.logger.Warnf(providers.TypeApp, "Cannot parse backup %s: %s", backupName, err)
		return nil, false
	}
	return &agg, true
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func writeFileAtomic(fileName string, data []byte, mode os.FileMode) error {
	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
