package structures

import "time"

type Server struct {
	Host          string        `yaml:"host" validate:"required"`
	Port          int           `yaml:"port" validate:"required|uint|min:1"`
	MaxUploadSize int           `yaml:"maxUploadSize" validate:"required|uint|min:1"`
	ReadTimeout   time.Duration `yaml:"readTimeout"`
	WriteTimeout  time.Duration `yaml:"writeTimeout"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ExtractionConfig struct {
	Locale      string        `yaml:"locale" validate:"required|in:de,en,nl"`
	UTCOffset   time.Duration `yaml:"utcOffset"`
	SessionGap  time.Duration `yaml:"sessionGap" validate:"required|min:1"`
	SessionTail time.Duration `yaml:"sessionTail"`
	MaxArchive  int           `yaml:"maxArchive" validate:"required|uint|min:1"`
	Pictures    bool          `yaml:"pictures"`
	Summary     bool          `yaml:"summary"`
}

type OutputConfig struct {
	Dir           string        `yaml:"dir" validate:"required|unixPath"`
	Compress      bool          `yaml:"compress"`
	Retention     time.Duration `yaml:"retention"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	Extraction ExtractionConfig `yaml:"extraction"`
	Output     OutputConfig     `yaml:"output"`
	WebServer  Server           `yaml:"webServer"`
	Logger     LoggerConfig     `yaml:"logger"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}
