package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	BackupPath   string        `yaml:"backupPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type TrackerConfig struct {
	WindowDays     int `yaml:"windowDays"`
	CoreActiveDays int `yaml:"coreActiveDays"`
	AtRiskDays     int `yaml:"atRiskDays"`
	TopN           int `yaml:"topN"`
}

type ReportConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Time             string `yaml:"time"`
	Dir              string `yaml:"dir"`
	Locale           string `yaml:"locale"`
	RetentionEnabled bool   `yaml:"retentionEnabled"`
	RetentionDays    int    `yaml:"retentionDays"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Tracker     TrackerConfig `yaml:"tracker"`
	Report      ReportConfig  `yaml:"report"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
