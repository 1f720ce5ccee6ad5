package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ddp/internal/structures"

	"github.com/spf13/viper"
)

const AppName = "DataDonationPipeline"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("extraction.locale", "de")
	v.SetDefault("extraction.utcOffset", time.Hour)
	v.SetDefault("extraction.sessionGap", 60*time.Second)
	v.SetDefault("extraction.sessionTail", 30*time.Second)
	v.SetDefault("extraction.maxArchive", 2048)
	v.SetDefault("extraction.pictures", false)
	v.SetDefault("extraction.summary", true)

	v.SetDefault("output.dir", filepath.Join(os.TempDir(), "ddp", "out"))
	v.SetDefault("output.compress", false)
	v.SetDefault("output.retention", 24*time.Hour)
	v.SetDefault("output.sweepInterval", 10*time.Minute)

	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8085)
	v.SetDefault("webServer.maxUploadSize", 512)
	v.SetDefault("webServer.readTimeout", 5*time.Minute)
	v.SetDefault("webServer.writeTimeout", 5*time.Minute)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", filepath.Join(os.TempDir(), "ddp", "logs"))

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 64)
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("metrics.enabled", false)
}

// NewConfigProvider loads the YAML config named by flags.ConfigPath on top of
// built-in defaults. An empty path runs on defaults and environment only.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	_ = v.BindEnv("logger.level", "DDP_LOG_LEVEL")
	_ = v.BindEnv("logger.dir", "DDP_LOG_DIR")
	_ = v.BindEnv("extraction.locale", "DDP_LOCALE")
	_ = v.BindEnv("extraction.utcOffset", "DDP_UTC_OFFSET")
	_ = v.BindEnv("cache.enabled", "DDP_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "DDP_CACHE_SIZE")
	_ = v.BindEnv("output.dir", "DDP_OUTPUT_DIR")

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
