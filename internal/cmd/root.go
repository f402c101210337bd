package cmd

import "github.com/alecthomas/kong"

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version VersionCmd `cmd:"" help:"Print version."`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API."`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape LinkedIn job URNs once and print them."`
	Seen    SeenCmd    `cmd:"" help:"Seen URN history utilities."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Proxies ProxiesCmd `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
