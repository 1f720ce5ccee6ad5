package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"ddp/internal/extract"

	json "github.com/goccy/go-json"
)

type platformJSON struct {
	ID        extract.ID `json:"id"`
	Name      string     `json:"name"`
	Artifacts []string   `json:"artifacts"`
}

// Execute implements the go-flags Commander interface for PlatformsCommand.
func (c *PlatformsCommand) Execute(args []string) error {
	platforms := extract.Platforms()

	if c.env.globals.JSON {
		out := make([]platformJSON, len(platforms))
		for i, p := range platforms {
			out[i] = platformJSON{ID: p.ID, Name: p.Name, Artifacts: p.Keys()}
		}
		enc := json.NewEncoder(c.env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(c.env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tARTIFACTS")
	for _, p := range platforms {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.ID, p.Name, len(p.Artifacts))
		if c.env.globals.Verbose {
			fmt.Fprintf(tw, "\t\t%s\n", strings.Join(p.Keys(), ", "))
		}
	}
	return tw.Flush()
}
