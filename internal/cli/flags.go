package cli

import (
	"io"

	"ddp/internal/di"
	"ddp/internal/structures"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	Debug   bool   `long:"debug" description:"Mirror logs to stderr"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Show progress while extracting"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// env is shared by every command of one parser.
type env struct {
	globals    *GlobalFlags
	version    string
	stdout     io.Writer
	stderr     io.Writer
	newToolkit func(*structures.CliFlags) (*di.Toolkit, error)
	newApp     func(*structures.CliFlags) (runner, error)
}

func (e *env) flags() *structures.CliFlags {
	return &structures.CliFlags{ConfigPath: e.globals.Config, DebugMode: e.globals.Debug}
}

// ExtractCommand runs one donation session over a local archive.
type ExtractCommand struct {
	Locale  string `long:"locale" description:"Output language: de | en | nl (default from config)"`
	Session string `long:"session" description:"Session id used in the donation key (random when empty)"`
	Decline bool   `long:"decline" description:"Store the declined marker instead of the tables"`
	DryRun  bool   `long:"dry-run" description:"Print the tables without storing a donation"`
	Args    struct {
		Archive string `positional-arg-name:"archive" required:"yes"`
	} `positional-args:"yes"`

	env *env
}

// ClassifyCommand reports platform and validity of archives.
type ClassifyCommand struct {
	Args struct {
		Archives []string `positional-arg-name:"archive" required:"1"`
	} `positional-args:"yes"`

	env *env
}

// PlatformsCommand lists the supported platforms and their artifacts.
type PlatformsCommand struct {
	env *env
}

// ServeCommand starts the local HTTP service.
type ServeCommand struct {
	Port int `long:"port" description:"Override the configured port"`

	env *env
}

// ShowCommand prints a stored donation.
type ShowCommand struct {
	Args struct {
		Key string `positional-arg-name:"key" required:"yes"`
	} `positional-args:"yes"`

	env *env
}
