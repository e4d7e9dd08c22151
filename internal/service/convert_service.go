// Package service implements the conversion use case.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/samber/lo"

	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/document"
	"github.com/oria-mc/oria/internal/storage"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

// Request describes one conversion run.
type Request struct {
	InputDir  string
	OutputDir string
	Direction convert.Direction

	// DryRun converts without writing any file.
	DryRun bool
}

// ConvertService loads, converts and writes item configs.
type ConvertService struct {
	store     storage.Storage
	loader    *document.Loader
	writer    *document.Writer
	converter *convert.Converter
	logger    *pterm.Logger
}

// NewConvertService creates a new convert service.
func NewConvertService(
	store storage.Storage,
	converter *convert.Converter,
	logger *pterm.Logger,
) *ConvertService {
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}
	return &ConvertService{
		store:     store,
		loader:    document.NewLoader(store, logger),
		writer:    document.NewWriter(store),
		converter: converter,
		logger:    logger,
	}
}

// OutputIsEmpty reports whether dir is missing or has no entries.
func (s *ConvertService) OutputIsEmpty(ctx context.Context, dir string) (bool, error) {
	return s.store.IsEmpty(ctx, dir)
}

// Run performs one conversion. Per-file and per-item problems end up in the
// report; the returned error is reserved for failures of the run itself.
func (s *ConvertService) Run(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	s.logger.Debug("starting conversion", s.logger.Args(
		"direction", req.Direction.String(),
		"input", req.InputDir,
		"output", req.OutputDir,
	))

	report := &Report{
		Direction: req.Direction,
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
	}

	var err error
	switch req.Direction {
	case convert.ItemsAdderToOxaren:
		err = s.toOxaren(ctx, req, report)
	case convert.OxarenToItemsAdder:
		err = s.toItemsAdder(ctx, req, report)
	default:
		err = fmt.Errorf("unsupported direction %s", req.Direction)
	}
	if err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	s.logger.Debug("conversion done", s.logger.Args(
		"converted", report.Converted,
		"skipped", report.Skipped,
		"files", len(report.Written),
	))
	return report, nil
}

func (s *ConvertService) toOxaren(ctx context.Context, req Request, report *Report) error {
	records, loadDiags, err := s.loader.LoadItemsAdder(ctx, req.InputDir)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.converter.ToOxaren(ctx, records)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	report.fill(loadDiags, res.Diagnostics, res.Converted, res.Skipped)
	report.Namespaces = lo.Map(res.Buckets, func(b convert.Bucket[oxaren.Item], _ int) NamespaceSummary {
		return NamespaceSummary{Namespace: b.Namespace, Items: len(b.Entries), File: document.OxarenPath(b.Namespace)}
	})

	if req.DryRun {
		return nil
	}
	report.Written, err = s.writer.WriteOxaren(ctx, req.OutputDir, res.Buckets)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (s *ConvertService) toItemsAdder(ctx context.Context, req Request, report *Report) error {
	docs, loadDiags, err := s.loader.LoadOxaren(ctx, req.InputDir)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.converter.ToItemsAdder(ctx, docs)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	report.fill(loadDiags, res.Diagnostics, res.Converted, res.Skipped)
	report.Namespaces = lo.Map(res.Buckets, func(b convert.Bucket[itemsadder.Item], _ int) NamespaceSummary {
		return NamespaceSummary{Namespace: b.Namespace, Items: len(b.Entries), File: document.ItemsAdderPath(b.Namespace)}
	})

	if req.DryRun {
		return nil
	}
	report.Written, err = s.writer.WriteItemsAdder(ctx, req.OutputDir, res.Buckets)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Report) fill(load, conv diagnostics.Diagnostics, converted, skipped int) {
	r.Diagnostics = load
	r.Diagnostics.Merge(conv)
	r.Converted = converted
	r.Skipped = skipped
}
