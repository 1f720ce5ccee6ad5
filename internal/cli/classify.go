package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"ddp/internal/archive"
	"ddp/internal/services"

	json "github.com/goccy/go-json"
)

// Execute implements the go-flags Commander interface for ClassifyCommand.
func (c *ClassifyCommand) Execute(args []string) error {
	tk, err := c.env.newToolkit(c.env.flags())
	if err != nil {
		return err
	}
	defer tk.Logger.Close()

	out := make([]services.Classification, 0, len(c.Args.Archives))
	for _, path := range c.Args.Archives {
		cls, err := classifyFile(tk.Service, path)
		if err != nil {
			return err
		}
		out = append(out, cls)
	}

	if c.env.globals.JSON {
		enc := json.NewEncoder(c.env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	tw := tabwriter.NewWriter(c.env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tPLATFORM\tSTATUS")
	for _, cls := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cls.File, cls.Platform, cls.Status)
	}
	return tw.Flush()
}

// classifyFile turns an unreadable zip into an invalid_file verdict; a
// missing file is still an error.
func classifyFile(svc services.DonationServiceInterface, path string) (services.Classification, error) {
	a, err := archive.Open(path)
	if err != nil {
		if errors.Is(err, archive.ErrInvalidArchive) {
			return services.Invalid(filepath.Base(path)), nil
		}
		return services.Classification{}, err
	}
	defer a.Close()
	return svc.Classify(a), nil
}
