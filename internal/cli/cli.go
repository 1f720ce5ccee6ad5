package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"ddp/internal/di"
	"ddp/internal/structures"

	goflags "github.com/jessevdk/go-flags"
)

type runner interface {
	Run(ctx context.Context) error
}

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Extract   *ExtractCommand
	Classify  *ClassifyCommand
	Platforms *PlatformsCommand
	Serve     *ServeCommand
	Show      *ShowCommand
}

func defaultEnv(globals *GlobalFlags, version string, stdout, stderr io.Writer) *env {
	return &env{
		globals:    globals,
		version:    version,
		stdout:     stdout,
		stderr:     stderr,
		newToolkit: di.InitToolkit,
		newApp: func(f *structures.CliFlags) (runner, error) {
			return di.InitApp(f)
		},
	}
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(e *env) (*goflags.Parser, *commands) {
	parser := goflags.NewParser(e.globals, goflags.Default)
	parser.Name = "ddp"
	parser.LongDescription = "Local extraction of donation tables from Instagram, LinkedIn and YouTube data downloads."

	cmds := &commands{
		Extract:   &ExtractCommand{env: e},
		Classify:  &ClassifyCommand{env: e},
		Platforms: &PlatformsCommand{env: e},
		Serve:     &ServeCommand{env: e},
		Show:      &ShowCommand{env: e},
	}

	parser.AddCommand("extract", "Extract donation tables from an archive", "Validate a data download, extract its tables and store the donation.", cmds.Extract)
	parser.AddCommand("classify", "Detect platform and validity", "Report the platform and validity status of one or more archives.", cmds.Classify)
	parser.AddCommand("platforms", "List supported platforms", "List the supported platforms and the artifacts extracted for each.", cmds.Platforms)
	parser.AddCommand("serve", "Start the local HTTP service", "Serve extraction over HTTP on the configured local address.", cmds.Serve)
	parser.AddCommand("show", "Print a stored donation", "Print the payload stored under a donation key.", cmds.Show)

	return parser, cmds
}

// Run is the main entry point for the CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("ddp %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	var globals GlobalFlags
	parser, _ := buildParser(defaultEnv(&globals, version, os.Stdout, os.Stderr))

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
