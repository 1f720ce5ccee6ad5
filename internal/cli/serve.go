package cli

import (
	"context"
	"net"
	"strconv"

	"ddp/internal"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	app, err := c.env.newApp(c.env.flags())
	if err != nil {
		return err
	}
	if c.Port > 0 {
		if a, ok := app.(*internal.App); ok {
			host, _, err := net.SplitHostPort(a.WebServer.Addr)
			if err != nil {
				return err
			}
			a.WebServer.Addr = net.JoinHostPort(host, strconv.Itoa(c.Port))
		}
	}
	return app.Run(context.Background())
}
