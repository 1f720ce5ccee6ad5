package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"ddp/internal/di"
	"ddp/internal/locale"
	"ddp/internal/services"
	"ddp/internal/wizard"

	"github.com/google/uuid"
	json "github.com/goccy/go-json"
)

// Execute implements the go-flags Commander interface for ExtractCommand.
func (c *ExtractCommand) Execute(args []string) error {
	tk, err := c.env.newToolkit(c.env.flags())
	if err != nil {
		return err
	}
	defer tk.Logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.run(ctx, tk)
}

func (c *ExtractCommand) resolveLocale(tk *di.Toolkit) (locale.Locale, error) {
	if c.Locale != "" {
		return locale.Parse(c.Locale)
	}
	return locale.Parse(tk.Config.Extraction.Locale)
}

func (c *ExtractCommand) run(ctx context.Context, tk *di.Toolkit) error {
	l, err := c.resolveLocale(tk)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Args.Archive)
	if err != nil {
		return err
	}
	session := c.Session
	if session == "" {
		session = uuid.NewString()
	}

	var progress func(services.Update)
	if c.env.globals.Verbose {
		bars := newProgress(c.env.stderr)
		defer bars.finish()
		progress = bars.update
	}

	m := wizard.New(session)
	host := wizard.NewHost(tk.Service, tk.Files, tk.Logger, l, progress)
	defer host.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan wizard.Event, 1)
	commands := make(chan wizard.Command)
	done := make(chan error, 1)
	go func() { done <- wizard.Run(ctx, m, events, commands) }()

	// abort stops the machine and waits for it so m is no longer shared.
	abort := func(err error) error {
		cancel()
		for range commands {
		}
		<-done
		return err
	}

	events <- wizard.FileSelected{Name: filepath.Base(c.Args.Archive), Data: data}
	for cmd := range commands {
		next, err := host.Execute(ctx, cmd)
		if err != nil {
			return abort(err)
		}
		if next == nil {
			switch cmd := cmd.(type) {
			case wizard.RetryPrompt:
				return abort(fmt.Errorf("%s: %s", c.Args.Archive, cmd.Status))
			case wizard.PromptConsent:
				if err := c.print(cmd); err != nil {
					return abort(err)
				}
				if c.DryRun {
					return abort(nil)
				}
				next = wizard.ConsentGiven{}
				if c.Decline {
					next = wizard.ConsentDeclined{}
				}
			default:
				continue
			}
		}
		events <- next
	}
	if err := <-done; err != nil {
		return err
	}

	if !c.env.globals.JSON {
		fmt.Fprintf(c.env.stdout, "Donation %s stored in %s\n", m.DonationKey(), host.Saved())
	}
	return nil
}

func (c *ExtractCommand) print(prompt wizard.PromptConsent) error {
	if c.env.globals.JSON {
		enc := json.NewEncoder(c.env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prompt.Tables)
	}
	return printTables(c.env.stdout, prompt.Tables)
}
