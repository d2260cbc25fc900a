// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/exporter"
	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/service"
	"github.com/FACorreiaa/invoice-reconciler/pkg/config"
)

// Converter runs a batch conversion.
type Converter interface {
	ConvertBatch(ctx context.Context, files []service.InputFile) (*service.BatchResult, error)
}

// Sweeper periodically picks up PDFs dropped into an inbox directory,
// converts them as one batch, writes the workbook to the output directory
// and moves the processed PDFs to the archive directory.
type Sweeper struct {
	cron   *cron.Cron
	cfg    config.SweepConfig
	svc    Converter
	logger *slog.Logger
}

// NewSweeper creates an inbox sweeper.
func NewSweeper(cfg config.SweepConfig, svc Converter, logger *slog.Logger) *Sweeper {
	// Standard 5-field cron format, no seconds
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Sweeper{
		cron:   c,
		cfg:    cfg,
		svc:    svc,
		logger: logger,
	}
}

// Start begins the scheduled sweep. An empty schedule disables the sweeper.
func (s *Sweeper) Start() error {
	if s.cfg.Schedule == "" {
		s.logger.Info("inbox sweeper disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.sweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	s.logger.Info("inbox sweeper started",
		slog.String("schedule", s.cfg.Schedule),
		slog.String("inbox", s.cfg.InboxDir),
	)
	return nil
}

// Stop gracefully stops the sweeper.
func (s *Sweeper) Stop() context.Context {
	s.logger.Info("inbox sweeper stopping")
	return s.cron.Stop()
}

// RunNow manually triggers a sweep (for testing/admin).
func (s *Sweeper) RunNow() {
	s.sweep()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	files, err := s.collectInbox()
	if err != nil {
		s.logger.Error("inbox scan failed", slog.Any("error", err))
		return
	}
	if len(files) == 0 {
		return
	}

	res, err := s.svc.ConvertBatch(ctx, files)
	if err != nil {
		s.logger.Error("inbox batch failed", slog.Any("error", err))
		return
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		s.logger.Error("creating output dir failed", slog.Any("error", err))
		return
	}
	outPath := filepath.Join(s.cfg.OutputDir,
		fmt.Sprintf("reconciled_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := exporter.SaveWorkbook(res, outPath); err != nil {
		s.logger.Error("writing workbook failed", slog.Any("error", err))
		return
	}

	s.archiveInbox(files)

	s.logger.Info("inbox sweep complete",
		slog.Int("files", len(files)),
		slog.Int("rows", len(res.Rows)),
		slog.String("workbook", outPath),
	)
}

// collectInbox reads every *.pdf in the inbox directory. A missing inbox is
// treated as empty.
func (s *Sweeper) collectInbox() ([]service.InputFile, error) {
	entries, err := os.ReadDir(s.cfg.InboxDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []service.InputFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.cfg.InboxDir, entry.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable inbox file",
				slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}
		files = append(files, service.InputFile{Name: entry.Name(), Data: data})
	}
	return files, nil
}

// archiveInbox moves processed PDFs out of the inbox so the next sweep does
// not pick them up again.
func (s *Sweeper) archiveInbox(files []service.InputFile) {
	if err := os.MkdirAll(s.cfg.ArchiveDir, 0755); err != nil {
		s.logger.Error("creating archive dir failed", slog.Any("error", err))
		return
	}
	for _, f := range files {
		src := filepath.Join(s.cfg.InboxDir, f.Name)
		dst := filepath.Join(s.cfg.ArchiveDir, f.Name)
		if err := os.Rename(src, dst); err != nil {
			s.logger.Warn("archiving inbox file failed",
				slog.String("file", f.Name), slog.Any("error", err))
		}
	}
}
