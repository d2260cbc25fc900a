// Package main is a command line front end for the conversion pipeline. It
// converts PDFs given as arguments (files or directories) and writes the
// result as a workbook, CSV files or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/exporter"
	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/pdftext"
	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/service"
)

func main() {
	var (
		outPath   = flag.String("out", "", "write an xlsx workbook to this path")
		csvDir    = flag.String("csv", "", "write cogs.csv, totals.csv and log.csv into this directory")
		asJSON    = flag.Bool("json", false, "print the three tables as JSON to stdout")
		tolerance = flag.String("tolerance", "0.01", "reconciliation tolerance in dollars")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if err := run(*outPath, *csvDir, *asJSON, *tolerance, *verbose, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(outPath, csvDir string, asJSON bool, tolerance string, verbose bool, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: convert [flags] <pdf-or-dir>...")
	}
	if outPath == "" && csvDir == "" && !asJSON {
		asJSON = true
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tol, err := decimal.NewFromString(tolerance)
	if err != nil {
		return fmt.Errorf("invalid tolerance %q: %w", tolerance, err)
	}

	files, err := collect(args, logger)
	if err != nil {
		return err
	}

	svc := service.NewConvertService(pdftext.New(), logger).WithTolerance(tol)
	res, err := svc.ConvertBatch(context.Background(), files)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(service.BuildOutput(res)); err != nil {
			return err
		}
	}

	if outPath != "" {
		if err := exporter.SaveWorkbook(res, outPath); err != nil {
			return err
		}
		logger.Info("workbook written", slog.String("path", outPath))
	}

	if csvDir != "" {
		if err := writeCSVs(res, csvDir); err != nil {
			return err
		}
	}
	return nil
}

// collect expands the arguments into input files; directories contribute
// every *.pdf directly inside them.
func collect(args []string, logger *slog.Logger) ([]service.InputFile, error) {
	var files []service.InputFile
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			data, err := os.ReadFile(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, service.InputFile{Name: filepath.Base(arg), Data: data})
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(arg, entry.Name()))
			if err != nil {
				logger.Warn("skipping unreadable file",
					slog.String("file", entry.Name()), slog.Any("error", err))
				continue
			}
			files = append(files, service.InputFile{Name: entry.Name(), Data: data})
		}
	}
	return files, nil
}

func writeCSVs(res *service.BatchResult, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	targets := []struct {
		name  string
		write func(*service.BatchResult, *os.File) error
	}{
		{"cogs.csv", func(r *service.BatchResult, f *os.File) error { return exporter.WriteCOGSCSV(r, f) }},
		{"totals.csv", func(r *service.BatchResult, f *os.File) error { return exporter.WriteTotalsCSV(r, f) }},
		{"log.csv", func(r *service.BatchResult, f *os.File) error { return exporter.WriteLogCSV(r, f) }},
	}
	for _, target := range targets {
		f, err := os.Create(filepath.Join(dir, target.name))
		if err != nil {
			return err
		}
		if err := target.write(res, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
