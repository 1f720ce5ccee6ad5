package export

import (
	"sync"
	"time"

	"ddp/internal/providers"
	"ddp/internal/structures"

	"github.com/roylee0704/gron"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Sweep() int
}

// Scheduler periodically drops donations older than the configured retention.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	files  FileManagerInterface
	cron   *gron.Cron
	now    func() time.Time
	opsMu  sync.Mutex
}

// Init sweeps once, then on every interval. A zero interval keeps only the
// start-up pass.
func (s *Scheduler) Init() {
	retention := s.config.Output.Retention
	interval := s.config.Output.SweepInterval
	if retention <= 0 {
		s.logger.Infof(providers.TypeApp, "Donation retention disabled")
		return
	}

	s.Sweep()
	if interval <= 0 {
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.Sweep()
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Sweeping %s every %s, retention %s", s.config.Output.Dir, interval, retention)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep runs one retention pass and returns the number of removed files.
func (s *Scheduler) Sweep() int {
	if s.config.Output.Retention <= 0 {
		return 0
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	removed, err := s.files.Sweep(s.config.Output.Retention, s.now())
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while sweeping donations: %s", err)
		return removed
	}
	if removed > 0 {
		s.logger.Infof(providers.TypeApp, "Removed %d expired donations", removed)
	}
	return removed
}

func NewScheduler(config *structures.Config, logger providers.Logger, files FileManagerInterface) SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		files:  files,
		now:    time.Now,
	}
}
