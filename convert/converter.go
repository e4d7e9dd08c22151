// Package convert translates item definitions between the ItemsAdder and
// Oxaren schemas.
//
// A run groups the input records by namespace, maps every item on its own
// and reassembles the results per namespace. Problems with a single record or
// item are collected as diagnostics and never stop the run; only a
// structurally invalid input (a record with no info block) or a cancelled
// context makes a run fail.
//
// Both directions are driven by the lookup tables in tables.go, so a rule
// added for one direction has an obvious inverse.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

// DefaultWorkers is the number of namespaces mapped concurrently by default.
const DefaultWorkers = 4

// ErrMissingInfo is returned when an ItemsAdder record has no info block.
var ErrMissingInfo = errors.New("record has no info block")

// Direction selects which way a run converts.
type Direction int

const (
	ItemsAdderToOxaren Direction = iota
	OxarenToItemsAdder
)

func (d Direction) String() string {
	switch d {
	case ItemsAdderToOxaren:
		return "ia-to-oxaren"
	case OxarenToItemsAdder:
		return "oxaren-to-ia"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses the names returned by Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "ia-to-oxaren", "":
		return ItemsAdderToOxaren, nil
	case "oxaren-to-ia":
		return OxarenToItemsAdder, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want ia-to-oxaren or oxaren-to-ia)", s)
	}
}

// Converter runs conversions. It holds no per-run state and is safe for
// concurrent use.
type Converter struct {
	ids     IDGenerator
	workers int
	logger  *pterm.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithIDGenerator sets the generator used for attribute modifier UUIDs.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *Converter) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithWorkers bounds how many namespaces are mapped at once.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *pterm.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		ids:     UUIDGenerator{},
		workers: DefaultWorkers,
		logger:  pterm.DefaultLogger.WithWriter(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToOxaren converts ItemsAdder records into Oxaren items grouped by namespace.
func (c *Converter) ToOxaren(ctx context.Context, records []*itemsadder.Record) (*Result[oxaren.Item], error) {
	for _, rec := range records {
		if rec != nil && rec.Info == nil {
			return nil, fmt.Errorf("%s: %w", rec.Path, ErrMissingInfo)
		}
	}

	var diags diagnostics.Diagnostics
	groups := groupByNamespace(
		compact(records),
		(*itemsadder.Record).Namespace,
		func(r *itemsadder.Record) string { return r.Path },
		&diags,
	)

	return runGroups(ctx, c, groups, diags, c.mapItemsAdderGroup)
}

// ToItemsAdder converts Oxaren documents into ItemsAdder items grouped by
// namespace. Recipe documents are reported and skipped.
func (c *Converter) ToItemsAdder(ctx context.Context, documents []*oxaren.Document) (*Result[itemsadder.Item], error) {
	var diags diagnostics.Diagnostics

	itemDocs := make([]*oxaren.Document, 0, len(documents))
	for _, doc := range compact(documents) {
		if doc.Kind == oxaren.KindRecipes {
			diags.PushWarning(diagnostics.NewUnsupportedFeatureWarning(diagnostics.FileLocation(doc.Path), "", "recipes"))
			continue
		}
		itemDocs = append(itemDocs, doc)
	}

	groups := groupByNamespace(
		itemDocs,
		func(d *oxaren.Document) string { return d.Namespace },
		func(d *oxaren.Document) string { return d.Path },
		&diags,
	)

	return runGroups(ctx, c, groups, diags, c.mapOxarenGroup)
}

// runGroups maps every group, at most c.workers at a time, and assembles the
// results in group order.
func runGroups[R any, T any](
	ctx context.Context,
	c *Converter,
	groups []namespaceGroup[R],
	diags diagnostics.Diagnostics,
	mapGroup func(namespaceGroup[R]) groupResult[T],
) (*Result[T], error) {
	results := make([]groupResult[T], len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = mapGroup(group)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result[T]{Diagnostics: diags}
	for i, gr := range results {
		res.Diagnostics.Merge(gr.diags)
		res.Skipped += gr.skipped
		res.Converted += len(gr.entries)
		if len(gr.entries) > 0 {
			res.Buckets = append(res.Buckets, Bucket[T]{Namespace: groups[i].namespace, Entries: gr.entries})
		}
	}

	c.logger.Debug("conversion finished", c.logger.Args(
		"namespaces", len(res.Buckets),
		"converted", res.Converted,
		"skipped", res.Skipped,
	))

	return res, nil
}

func compact[R any](records []*R) []*R {
	out := make([]*R, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
