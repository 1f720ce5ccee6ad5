package providers

import (
	"testing"
	"time"

	"ddp/internal/structures"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host:          "127.0.0.1",
			Port:          8085,
			MaxUploadSize: 512,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Extraction: structures.ExtractionConfig{
			Locale:      "de",
			UTCOffset:   time.Hour,
			SessionGap:  60 * time.Second,
			SessionTail: 30 * time.Second,
			MaxArchive:  2048,
		},
		Output: structures.OutputConfig{
			Dir: "/tmp/ddp",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnsupportedLocale(t *testing.T) {
	c := validConfig()
	c.Extraction.Locale = "fr"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroSessionGap(t *testing.T) {
	c := validConfig()
	c.Extraction.SessionGap = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
