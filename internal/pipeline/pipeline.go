// Package pipeline runs a platform's artifact registry over one archive and
// streams progress as it goes.
package pipeline

import (
	"context"
	"errors"
	"iter"
	"slices"
	"time"

	"ddp/internal/aggregate"
	"ddp/internal/archive"
	"ddp/internal/extract"
	"ddp/internal/locale"
	"ddp/internal/providers"
	"ddp/internal/records"
	"ddp/internal/structures"
	"ddp/internal/table"
)

// Progress is emitted once per artifact. The last event has Done set,
// Percentage 100 and one table per registry entry.
type Progress struct {
	Message    string
	Percentage float64
	Index      int
	Total      int
	Tables     []*table.Table
	Done       bool
}

type DriverInterface interface {
	Run(ctx context.Context, a *archive.Archive, p *extract.Platform, l locale.Locale, pictures extract.Pictures) iter.Seq[Progress]
	ScanPictures(ctx context.Context, a *archive.Archive, c Classifier, l locale.Locale) iter.Seq[PictureProgress]
}

type Driver struct {
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	offset   time.Duration
	sessions extract.Sessions
	names    extract.Names
}

func NewDriver(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) DriverInterface {
	return &Driver{
		logger:  logger,
		metrics: metrics,
		offset:  conf.Extraction.UTCOffset,
		sessions: extract.Sessions{
			Gap:  conf.Extraction.SessionGap,
			Tail: conf.Extraction.SessionTail,
		},
		names: extract.DefaultNames(),
	}
}

// Run extracts every artifact of p in registry order. Cancellation is
// checked between artifacts; a cancelled run simply stops yielding.
func (d *Driver) Run(ctx context.Context, a *archive.Archive, p *extract.Platform, l locale.Locale, pictures extract.Pictures) iter.Seq[Progress] {
	return func(yield func(Progress) bool) {
		started := time.Now()
		d.metrics.ExtractionStarted()
		defer func() {
			d.metrics.ExtractionFinished(string(p.ID), time.Since(started))
		}()

		total := len(p.Artifacts)
		if total == 0 {
			yield(Progress{Message: locale.T(l, locale.KeyProgressDone), Percentage: 100, Done: true})
			return
		}

		days := aggregate.NewConverter(d.offset)
		if pictures == nil {
			pictures = extract.Pictures{}
		}
		tables := make([]*table.Table, 0, total)

		for i, desc := range p.Artifacts {
			if err := ctx.Err(); err != nil {
				d.logger.Warnf(providers.TypeExtract, "%s: run stopped after %d of %d artifacts: %v", a.Name(), i, total, err)
				return
			}

			before := days.Substitutions()
			in := &extract.Input{
				Locale:   l,
				Pictures: pictures,
				Days:     days,
				Names:    d.names,
				Sessions: d.sessions,
			}
			t := d.artifact(a, p, desc, in)
			if n := days.Substitutions() - before; n > 0 {
				d.logger.Warnf(providers.TypeExtract, "%s: %d unreadable timestamps bucketed on %s", desc.Key, n, aggregate.Sentinel)
				d.metrics.AddSentinelDays(string(p.ID), n)
			}
			tables = append(tables, t)

			ev := Progress{
				Message:    locale.T(l, locale.KeyProgressExtracting) + desc.Key,
				Percentage: float64(i+1) / float64(total) * 100,
				Index:      i + 1,
				Total:      total,
				Tables:     slices.Clone(tables),
			}
			if i+1 == total {
				ev.Message = locale.T(l, locale.KeyProgressDone)
				ev.Percentage = 100
				ev.Done = true
			}
			if !yield(ev) {
				return
			}
		}
	}
}

func (d *Driver) locate(a *archive.Archive, p *extract.Platform, desc extract.Descriptor) (*records.Located, []*records.DecodeError, error) {
	switch desc.Source {
	case extract.SourceMessages:
		return records.MergeMessages(a, p.Locator.RepairEncoding)
	case extract.SourceCombined:
		return p.Locator.CombineSignals(a, desc.Slots...)
	}
	return p.Locator.Locate(a, desc.Patterns...)
}

// artifact never fails: a missing source or a failing extractor is turned
// into a placeholder table.
func (d *Driver) artifact(a *archive.Archive, p *extract.Platform, desc extract.Descriptor, in *extract.Input) *table.Table {
	platform := string(p.ID)

	loc, failures, err := d.locate(a, p, desc)
	for _, f := range failures {
		d.logger.Warnf(providers.TypeExtract, "%s: cannot decode %s: %v", desc.Key, f.Entry, f.Err)
	}

	var t *table.Table
	switch {
	case err != nil:
		if !errors.Is(err, records.ErrNotFound) {
			d.logger.Errorf(providers.TypeExtract, "%s: locate failed: %v", desc.Key, err)
		} else {
			d.logger.Debugf(providers.TypeExtract, "%s: no entry matches %v", desc.Key, desc.Patterns)
		}
		d.metrics.IncArtifactOutcome(platform, providers.OutcomeMissing)
		t = Missing(in.Locale, desc.Key)
	default:
		in.Record = loc.Record
		var cause any
		t, cause = safeExtract(desc.Extract, in)
		if cause != nil {
			d.logger.Errorf(providers.TypeExtract, "%s: extraction from %s failed: %v", desc.Key, loc.Entry, cause)
			d.metrics.IncArtifactOutcome(platform, providers.OutcomeFailed)
			t = Failed(in.Locale, desc.Key, cause)
		} else {
			d.metrics.IncArtifactOutcome(platform, providers.OutcomeOK)
		}
	}

	t.Key = desc.Key
	t.Title = desc.Title.In(in.Locale)
	return t
}

// safeExtract returns the extractor's error or recovered panic as cause.
func safeExtract(fn extract.Func, in *extract.Input) (t *table.Table, cause any) {
	defer func() {
		if r := recover(); r != nil {
			t, cause = nil, r
		}
	}()
	t, err := fn(in)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errNilTable
	}
	return t, nil
}

var errNilTable = errors.New("extractor returned no table")
