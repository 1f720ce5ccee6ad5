package export

import (
	"errors"
	"sync"
	"testing"
	"time"

	"ddp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFiles struct {
	mu      sync.Mutex
	calls   []time.Duration
	removed int
	err     error
}

func (s *stubFiles) Save(string, []byte) (string, error) { return "", nil }
func (s *stubFiles) Load(string) ([]byte, error)         { return nil, nil }
func (s *stubFiles) Sweep(maxAge time.Duration, _ time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, maxAge)
	return s.removed, s.err
}

func (s *stubFiles) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestScheduler_Sweep(t *testing.T) {
	files := &stubFiles{removed: 3}
	logger := &testutil.MockLogger{}
	s := NewScheduler(outputConfig(t.TempDir(), false), logger, files)

	assert.Equal(t, 3, s.Sweep())
	assert.Equal(t, []time.Duration{time.Hour}, files.calls)
	assert.True(t, logger.Contains("info", "Removed 3 expired donations"))
}

func TestScheduler_SweepError(t *testing.T) {
	files := &stubFiles{err: errors.New("permission denied")}
	logger := &testutil.MockLogger{}
	s := NewScheduler(outputConfig(t.TempDir(), false), logger, files)

	assert.Zero(t, s.Sweep())
	assert.True(t, logger.Contains("error", "permission denied"))
}

func TestScheduler_DisabledRetention(t *testing.T) {
	conf := outputConfig(t.TempDir(), false)
	conf.Output.Retention = 0
	logger := &testutil.MockLogger{}
	files := &stubFiles{}
	s := NewScheduler(conf, logger, files)

	s.Init()
	defer s.Stop()

	assert.Nil(t, s.(*Scheduler).cron)
	assert.True(t, logger.Contains("info", "retention disabled"))
	assert.Zero(t, s.Sweep())
	assert.Zero(t, files.count())
}

func TestScheduler_StartupSweepOnly(t *testing.T) {
	conf := outputConfig(t.TempDir(), false)
	conf.Output.SweepInterval = 0
	files := &stubFiles{}
	s := NewScheduler(conf, &testutil.MockLogger{}, files)

	s.Init()
	defer s.Stop()

	assert.Nil(t, s.(*Scheduler).cron)
	assert.Equal(t, 1, files.count())
}

func TestScheduler_PeriodicSweep(t *testing.T) {
	conf := outputConfig(t.TempDir(), false)
	conf.Output.SweepInterval = time.Second
	files := &stubFiles{}
	s := NewScheduler(conf, &testutil.MockLogger{}, files)

	s.Init()
	defer s.Stop()

	require.Eventually(t, func() bool { return files.count() >= 2 }, 4*time.Second, 20*time.Millisecond)
}
