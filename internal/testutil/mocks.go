package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ddp/internal/providers"
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

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
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

// Contains reports whether any entry at level renders a message containing substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
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
	m.Data[key] = value
}

// MockCompressor implements the compressor interface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu       sync.Mutex
	Requests int
	Hits     int
	Misses   int
	Started  int
	Finished map[string]int
	Outcomes map[string]int // key: "platform:outcome"
	Sentinel map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Finished: make(map[string]int),
		Outcomes: make(map[string]int),
		Sentinel: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}
func (m *MockMetrics) ExtractionStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started++
}
func (m *MockMetrics) ExtractionFinished(platform string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finished[platform]++
}
func (m *MockMetrics) IncArtifactOutcome(platform, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[platform+":"+outcome]++
}
func (m *MockMetrics) AddSentinelDays(platform string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sentinel[platform] += n
}

func (m *MockMetrics) Outcome(platform, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[platform+":"+outcome]
}

// MockClassifier answers face-presence queries from a fixed table.
type MockClassifier struct {
	mu    sync.Mutex
	Faces map[string]bool
	Err   map[string]error
	Calls []string
}

func (m *MockClassifier) Classify(_ context.Context, name string, _ []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
	if err, ok := m.Err[name]; ok {
		return false, err
	}
	return m.Faces[name], nil
}
