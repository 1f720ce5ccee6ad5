package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"ddp/internal/archive"
	"ddp/internal/detect"
	"ddp/internal/extract"
	"ddp/internal/locale"
	"ddp/internal/pipeline"
	"ddp/internal/providers"
	"ddp/internal/structures"
	"ddp/internal/table"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

var ErrNotValid = errors.New("archive is not a valid data download")

// Classification is the validity verdict for one uploaded archive.
type Classification struct {
	File     string         `json:"file"`
	Platform extract.ID     `json:"platform"`
	Outcome  detect.Outcome `json:"-"`
	Status   string         `json:"status"`
}

func (c Classification) Valid() bool {
	return c.Outcome == detect.Valid
}

func newClassification(file string, id extract.ID, o detect.Outcome) Classification {
	return Classification{File: file, Platform: id, Outcome: o, Status: o.String()}
}

// Invalid is the classification of a file that cannot be read as a zip.
func Invalid(file string) Classification {
	return newClassification(file, extract.Unknown, detect.InvalidArchive)
}

type Stage string

const (
	StagePictures Stage = "pictures"
	StageExtract  Stage = "extract"
)

// Update is one progress notification of a running extraction.
type Update struct {
	RunID      string  `json:"run_id"`
	Stage      Stage   `json:"stage"`
	Message    string  `json:"message"`
	Percentage float64 `json:"percentage"`
}

type Result struct {
	RunID    string         `json:"run_id"`
	File     string         `json:"file"`
	Platform extract.ID     `json:"platform"`
	Locale   locale.Locale  `json:"locale"`
	Tables   []*table.Table `json:"tables"`
}

type DonationServiceInterface interface {
	Classify(a *archive.Archive) Classification
	Extract(ctx context.Context, a *archive.Archive, l locale.Locale, progress func(Update)) (*Result, error)
	InFlight() int64
}

type DonationService struct {
	conf       *structures.Config
	logger     providers.Logger
	driver     pipeline.DriverInterface
	classifier pipeline.Classifier
	inFlight   atomic.Int64
}

func (ds *DonationService) Classify(a *archive.Archive) Classification {
	names := a.Names()
	id := detect.Identify(a.Name(), names)
	return newClassification(a.Name(), id, detect.Validate(id, names))
}

// Extract classifies a, scans its pictures when enabled and the platform
// uses them, then runs the platform registry. progress may be nil.
func (ds *DonationService) Extract(ctx context.Context, a *archive.Archive, l locale.Locale, progress func(Update)) (*Result, error) {
	cls := ds.Classify(a)
	if !cls.Valid() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotValid, cls.File, cls.Status)
	}
	p, ok := extract.Lookup(cls.Platform)
	if !ok {
		return nil, fmt.Errorf("%w: no registry for %s", ErrNotValid, cls.Platform)
	}
	if progress == nil {
		progress = func(Update) {}
	}

	runID := uuid.NewString()
	ds.inFlight.Inc()
	defer ds.inFlight.Dec()

	started := time.Now()
	ds.logger.Infof(providers.TypeExtract, "run %s: extracting %s (%s, %s)", runID, cls.File, p.Name, l)

	var pictures extract.Pictures
	if ds.conf.Extraction.Pictures && usesPictures(p) {
		for ev := range ds.driver.ScanPictures(ctx, a, ds.classifier, l) {
			progress(Update{RunID: runID, Stage: StagePictures, Message: ev.Message, Percentage: ev.Percentage})
			if ev.Done {
				pictures = ev.Pictures
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	var tables []*table.Table
	for ev := range ds.driver.Run(ctx, a, p, l, pictures) {
		progress(Update{RunID: runID, Stage: StageExtract, Message: ev.Message, Percentage: ev.Percentage})
		if ev.Done {
			tables = ev.Tables
		}
	}
	if tables == nil {
		if err := ctx.Err(); err != nil {
			ds.logger.Warnf(providers.TypeExtract, "run %s: cancelled after %s", runID, time.Since(started))
			return nil, err
		}
		tables = []*table.Table{}
	}
	if ds.conf.Extraction.Summary {
		tables = pipeline.Summarize(tables, l)
	}

	ds.logger.Infof(providers.TypeExtract, "run %s: %d tables in %s", runID, len(tables), time.Since(started))
	return &Result{RunID: runID, File: cls.File, Platform: p.ID, Locale: l, Tables: tables}, nil
}

func (ds *DonationService) InFlight() int64 {
	return ds.inFlight.Load()
}

func usesPictures(p *extract.Platform) bool {
	return slices.ContainsFunc(p.Artifacts, func(d extract.Descriptor) bool {
		return d.NeedsPictures
	})
}

func NewDonationService(conf *structures.Config, logger providers.Logger, driver pipeline.DriverInterface, classifier pipeline.Classifier) DonationServiceInterface {
	return &DonationService{
		conf:       conf,
		logger:     logger,
		driver:     driver,
		classifier: classifier,
	}
}
