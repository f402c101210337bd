package cmd

import (
	"fmt"

	"github.com/jimezsa/urnscraper/internal/seen"
)

type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"Write unseen URNs (A-B) to JSON."`
	Update SeenUpdateCmd `cmd:"" help:"Merge new URNs into seen history JSON."`
}

type SeenDiffCmd struct {
	New   string `name:"new" required:"" help:"Path to new URNs or scrape result JSON file (A)."`
	Seen  string `name:"seen" required:"" help:"Path to seen URNs JSON file (B). Missing file is treated as empty."`
	Out   string `name:"out" required:"" help:"Output path for unseen URNs JSON file (C)."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Path to seen URNs JSON file (B). Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to URNs or scrape result JSON file to merge into seen history."`
	Out   string `name:"out" required:"" help:"Output path for updated seen URNs JSON."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	newURNs, err := seen.ReadURNs(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	seenURNs, err := seen.ReadURNsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	unseen, stats := seen.Diff(newURNs, seenURNs)
	if err := seen.WriteURNs(c.Out, unseen); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if !c.Stats {
		return nil
	}
	_, err = fmt.Fprintf(
		ctx.Out,
		"total_new=%d total_seen=%d invalid_skipped=%d unseen_emitted=%d\n",
		stats.TotalNew,
		stats.TotalSeen,
		stats.InvalidSkipped(),
		stats.Unseen,
	)
	return err
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	seenURNs, err := seen.ReadURNsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	input, err := seen.ReadURNs(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	merged, stats := seen.Merge(seenURNs, input)
	if err := seen.WriteURNs(c.Out, merged); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if !c.Stats {
		return nil
	}
	_, err = fmt.Fprintf(
		ctx.Out,
		"total_seen=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
		stats.TotalSeen,
		stats.TotalInput,
		stats.InvalidSkipped(),
		stats.Added,
		stats.TotalOut,
	)
	return err
}
