// Package service orchestrates the conversion pipeline: text extraction,
// row parsing, total extraction and reconciliation across a batch of
// documents.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/parser"
	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/reconcile"
	"github.com/FACorreiaa/invoice-reconciler/pkg/metrics"
)

// Log statuses for per-file processing outcomes.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// ErrNoRows reports that a document processed cleanly but yielded no
// line-item rows.
var ErrNoRows = errors.New("no rows extracted")

// InputFile is one document submitted for conversion.
type InputFile struct {
	Name string
	Data []byte
}

// PageSource extracts per-page text from a raw document.
type PageSource interface {
	PagesFromBytes(data []byte) ([]string, error)
}

// LogRecord is the processing outcome for one file. Tokens and Rows are nil
// for files that failed before parsing.
type LogRecord struct {
	File   string
	Tokens *int
	Rows   *int
	Status string
	Error  string
}

// BatchResult is the complete output of one batch conversion.
type BatchResult struct {
	BatchID uuid.UUID
	Rows    []parser.Row
	Totals  []reconcile.Record
	Log     []LogRecord
	Elapsed time.Duration
}

// ConvertService runs the document conversion pipeline.
type ConvertService struct {
	pages     PageSource
	tolerance decimal.Decimal
	logger    *slog.Logger
}

func NewConvertService(pages PageSource, logger *slog.Logger) *ConvertService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertService{
		pages:     pages,
		tolerance: reconcile.DefaultTolerance,
		logger:    logger,
	}
}

// WithTolerance overrides the reconciliation tolerance. Non-positive values
// are ignored.
func (s *ConvertService) WithTolerance(t decimal.Decimal) *ConvertService {
	if t.Sign() > 0 {
		s.tolerance = t
	}
	return s
}

// ConvertBatch processes every file and reconciles the batch. A file that
// fails to process is logged with status ERROR and an empty total; it never
// aborts the rest of the batch. Only an empty input or a cancelled context
// returns an error.
func (s *ConvertService) ConvertBatch(ctx context.Context, files []InputFile) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, errors.New("no input files")
	}

	start := time.Now()
	res := &BatchResult{BatchID: uuid.New()}
	totals := make([]reconcile.FileTotal, 0, len(files))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pages, err := s.pages.PagesFromBytes(f.Data)
		if err != nil {
			s.logger.Warn("document failed", slog.String("file", f.Name), slog.Any("error", err))
			metrics.DocumentsProcessed.WithLabelValues("error").Inc()
			totals = append(totals, reconcile.FileTotal{FileName: f.Name})
			res.Log = append(res.Log, LogRecord{
				File:   f.Name,
				Status: StatusError,
				Error:  err.Error(),
			})
			continue
		}

		tokens, fullText := parser.Tokenize(pages)
		rows := parser.ExtractRows(tokens, f.Name)
		res.Rows = append(res.Rows, rows...)
		metrics.RowsExtracted.Add(float64(len(rows)))

		ft := reconcile.FileTotal{FileName: f.Name}
		if total, ok := parser.ExtractTotal(fullText); ok {
			ft.Extracted = &total
		}
		totals = append(totals, ft)

		nTokens, nRows := len(tokens), len(rows)
		res.Log = append(res.Log, LogRecord{
			File:   f.Name,
			Tokens: &nTokens,
			Rows:   &nRows,
			Status: StatusOK,
		})
		metrics.DocumentsProcessed.WithLabelValues("ok").Inc()

		s.logger.Info("document processed",
			slog.String("file", f.Name),
			slog.Int("tokens", nTokens),
			slog.Int("rows", nRows),
		)
	}

	res.Totals = reconcile.Build(totals, res.Rows, s.tolerance)
	for _, rec := range res.Totals {
		metrics.ReconcileVerdicts.WithLabelValues(rec.Verdict).Inc()
	}

	res.Elapsed = time.Since(start)
	metrics.BatchDuration.Observe(res.Elapsed.Seconds())

	s.logger.Info("batch complete",
		slog.String("batch_id", res.BatchID.String()),
		slog.Int("files", len(files)),
		slog.Int("rows", len(res.Rows)),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// ConvertFile processes a single document. Unlike ConvertBatch, an
// extraction failure is returned as an error; a clean document with no
// recognizable rows returns ErrNoRows.
func (s *ConvertService) ConvertFile(ctx context.Context, file InputFile) (*BatchResult, error) {
	res, err := s.ConvertBatch(ctx, []InputFile{file})
	if err != nil {
		return nil, err
	}
	for _, lr := range res.Log {
		if lr.Status == StatusError {
			return nil, fmt.Errorf("converting %s: %s", lr.File, lr.Error)
		}
	}
	if len(res.Rows) == 0 {
		return res, ErrNoRows
	}
	return res, nil
}
