package di

import (
	"ddp/internal/export"
	"ddp/internal/providers"
	"ddp/internal/services"
	"ddp/internal/structures"
)

// Toolkit is what the one-shot CLI commands need; serve uses App instead.
type Toolkit struct {
	Config  *structures.Config
	Logger  providers.Logger
	Service services.DonationServiceInterface
	Files   export.FileManagerInterface
}
