package wizard

import (
	"context"

	"ddp/internal/archive"
	"ddp/internal/export"
	"ddp/internal/locale"
	"ddp/internal/providers"
	"ddp/internal/services"
)

// Host carries out the machine's commands against the donation service and
// the donation store. It keeps the archive of the current attempt open
// between validation and extraction.
type Host struct {
	service  services.DonationServiceInterface
	files    export.FileManagerInterface
	logger   providers.Logger
	locale   locale.Locale
	progress func(services.Update)
	archive  *archive.Archive
	saved    string
}

func NewHost(service services.DonationServiceInterface, files export.FileManagerInterface, logger providers.Logger, l locale.Locale, progress func(services.Update)) *Host {
	return &Host{
		service:  service,
		files:    files,
		logger:   logger,
		locale:   l,
		progress: progress,
	}
}

// Execute runs cmd. The returned event is nil when the next event has to
// come from the donor.
func (h *Host) Execute(ctx context.Context, cmd Command) (Event, error) {
	switch c := cmd.(type) {
	case ValidateFile:
		h.release()
		a, err := archive.FromBytes(c.Name, c.Data)
		if err != nil {
			h.logger.Warnf(providers.TypeApp, "%s: %s", c.Name, err)
			return Classified{Classification: services.Invalid(c.Name)}, nil
		}
		h.archive = a
		return Classified{Classification: h.service.Classify(a)}, nil

	case StartExtraction:
		res, err := h.service.Extract(ctx, h.archive, h.locale, h.progress)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			h.logger.Errorf(providers.TypeExtract, "%s extraction failed: %s", c.Platform, err)
			return ExtractionFailed{Err: err}, nil
		}
		return Extracted{Result: res}, nil

	case Donate:
		path, err := h.files.Save(c.Key, c.Payload)
		if err != nil {
			return nil, err
		}
		h.saved = path
		h.release()
	}
	return nil, nil
}

// Saved is the path of the stored donation, empty before Donate ran.
func (h *Host) Saved() string {
	return h.saved
}

func (h *Host) Close() {
	h.release()
}

func (h *Host) release() {
	if h.archive != nil {
		_ = h.archive.Close()
		h.archive = nil
	}
}
