package pipeline

import (
	"context"
	"errors"
	"iter"
	"maps"
	"strings"

	"ddp/internal/archive"
	"ddp/internal/extract"
	"ddp/internal/locale"
	"ddp/internal/providers"
)

// Classifier reports whether a face is visible on an image.
type Classifier interface {
	Classify(ctx context.Context, name string, data []byte) (bool, error)
}

// ErrNoClassifier is returned by the default classifier; no face model
// ships with the binary.
var ErrNoClassifier = errors.New("no face classifier available")

type noopClassifier struct{}

func (noopClassifier) Classify(context.Context, string, []byte) (bool, error) {
	return false, ErrNoClassifier
}

// NewClassifier returns the classifier used when none is plugged in. Every
// picture it sees stays not analyzed.
func NewClassifier() Classifier {
	return noopClassifier{}
}

// PictureProgress is emitted once per archive entry. Only the final event
// carries the picture map.
type PictureProgress struct {
	Message    string
	Percentage float64
	Pictures   extract.Pictures
	Done       bool
}

// IsPicture selects the entries handed to the classifier.
func IsPicture(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "media") && strings.HasSuffix(lower, ".jpg")
}

// ScanPictures classifies every media jpg of the archive. Other entries
// and images the classifier fails on are recorded as not analyzed.
func (d *Driver) ScanPictures(ctx context.Context, a *archive.Archive, c Classifier, l locale.Locale) iter.Seq[PictureProgress] {
	return func(yield func(PictureProgress) bool) {
		names := a.Names()
		pictures := make(extract.Pictures, len(names))

		for i, name := range names {
			if err := ctx.Err(); err != nil {
				d.logger.Warnf(providers.TypeExtract, "%s: picture scan stopped: %v", a.Name(), err)
				return
			}
			pictures[name] = d.classify(ctx, a, c, name)

			ev := PictureProgress{
				Message:    locale.T(l, locale.KeyProgressPictures) + name,
				Percentage: float64(i+1) / float64(len(names)) * 100,
			}
			if !yield(ev) {
				return
			}
		}

		yield(PictureProgress{
			Message:    locale.T(l, locale.KeyProgressPicturesDone),
			Percentage: 100,
			Pictures:   maps.Clone(pictures),
			Done:       true,
		})
	}
}

func (d *Driver) classify(ctx context.Context, a *archive.Archive, c Classifier, name string) any {
	if c == nil || !IsPicture(name) {
		return locale.NotAnalyzed
	}
	data, err := a.Read(name)
	if err != nil {
		d.logger.Warnf(providers.TypeExtract, "%s: cannot read picture: %v", name, err)
		return locale.NotAnalyzed
	}
	face, err := c.Classify(ctx, name, data)
	if errors.Is(err, ErrNoClassifier) {
		d.logger.Debugf(providers.TypeExtract, "%s: %v", name, err)
		return locale.NotAnalyzed
	}
	if err != nil {
		d.logger.Warnf(providers.TypeExtract, "%s: classifier failed: %v", name, err)
		return locale.NotAnalyzed
	}
	return face
}
