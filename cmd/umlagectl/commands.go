package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"umlage/internal/app"
	"umlage/internal/building"
	"umlage/internal/config"
	"umlage/internal/domain"
	"umlage/internal/export"
	"umlage/internal/logging"
)

func loadConfig(c *cli.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Log.Level = c.String("log-level")
	cfg.Log.Format = "console"
	return cfg, logging.New(cfg.Log), nil
}

// =============================================================================
// PROCESS COMMAND
// =============================================================================

func processCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Run the invoice pipeline over local PDF files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "Output format (json, csv, xlsx)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to FILE instead of stdout",
			},
		},
		Action: runProcess,
	}
}

func runProcess(c *cli.Context) error {
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	files, err := readInputs(c.Args().Slice())
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}
	a, err := app.New(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	batch, err := a.Service.ProcessBatch(c.Context, files)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	return writeBatch(out, format, batch)
}

func readInputs(paths []string) ([]domain.FileInput, error) {
	if len(paths) == 0 {
		return nil, domain.ErrNoFiles
	}
	files := make([]domain.FileInput, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, domain.FileInput{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

func writeBatch(out io.Writer, format export.Format, batch *domain.BatchResult) error {
	if format == export.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, format, batch); err != nil {
		return err
	}
	_, err := out.Write(buf.Bytes())
	return err
}

// =============================================================================
// MATCH COMMAND
// =============================================================================

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Match an address against the building directory",
		ArgsUsage: "ADDRESS",
		Action:    runMatch,
	}
}

func runMatch(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one address argument is required", 2)
	}

	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	src, _, closer, err := app.NewBuildingSource(c.Context, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer() }()
	}
	m, err := building.LoadMatcher(c.Context, src)
	if err != nil {
		return err
	}
	if err := printMatch(c.App.Writer, m, c.Args().First()); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func printMatch(out io.Writer, m *building.Matcher, address string) error {
	for _, b := range m.Buildings() {
		fmt.Fprintf(out, "%3d  %-40s  %3d\n", b.ID, b.Address, building.PartialRatio(address, b.Address))
	}
	best, score := m.Match(address)
	if best == nil {
		return fmt.Errorf("%w (best score %d, need > %d)", domain.ErrBuildingNotFound, score, building.MinScore)
	}
	fmt.Fprintf(out, "match: building %d (%s), score %d\n", best.ID, best.Address, score)
	return nil
}

// =============================================================================
// CATEGORIES COMMAND
// =============================================================================

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the operating-cost categories and their allocation keys",
		Action: func(c *cli.Context) error {
			printCategories(c.App.Writer)
			return nil
		},
	}
}

func printCategories(out io.Writer) {
	for _, r := range domain.AllocationRules() {
		fmt.Fprintf(out, "%-35s %s\n", r.Category, r.AllocationKey)
	}
	fmt.Fprintf(out, "%-35s %s\n", domain.CategoryOther, domain.AllocationKeyFor(domain.CategoryOther))
}
