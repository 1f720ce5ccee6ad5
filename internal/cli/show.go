package cli

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	tk, err := c.env.newToolkit(c.env.flags())
	if err != nil {
		return err
	}
	defer tk.Logger.Close()

	data, err := tk.Files.Load(c.Args.Key)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.Args.Key, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, err = c.env.stdout.Write(data)
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(c.env.stdout)
	return err
}
