package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"pad/internal/structures"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("tracker.windowDays", 30)
	viper.SetDefault("tracker.coreActiveDays", 7)
	viper.SetDefault("tracker.atRiskDays", 14)
	viper.SetDefault("tracker.topN", 10)
	viper.SetDefault("report.time", "03:00")
	viper.SetDefault("report.locale", "en_US")
	viper.SetDefault("report.retentionDays", 60)

	viper.BindEnv("logger.level", "PAD_LOG_LEVEL")
	viper.BindEnv("report.time", "PAD_REPORT_TIME")
	viper.BindEnv("report.locale", "PAD_REPORT_LOCALE")
	viper.BindEnv("persistence.saveInterval", "PAD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "PAD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "PAD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PlayerActivityDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
