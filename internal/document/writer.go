package document

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/storage"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/ordered"
	"github.com/oria-mc/oria/schema/oxaren"
)

// Writer writes converted namespaces to storage.
type Writer struct {
	store storage.Storage
}

// NewWriter creates a Writer.
func NewWriter(store storage.Storage) *Writer {
	return &Writer{store: store}
}

// OxarenPath is where the items of namespace are written.
func OxarenPath(namespace string) string {
	return path.Join(ItemsDir, namespace+".yml")
}

// ItemsAdderPath is where the items of namespace are written.
func ItemsAdderPath(namespace string) string {
	return path.Join(ContentsDir, namespace, "configs", "items.yml")
}

// WriteOxaren writes one items/<namespace>.yml per bucket and returns the
// written paths relative to outputDir.
func (w *Writer) WriteOxaren(ctx context.Context, outputDir string, buckets []convert.Bucket[oxaren.Item]) ([]string, error) {
	written := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if err := checkNamespace(b.Namespace); err != nil {
			return written, err
		}

		var items ordered.Map[oxaren.Item]
		for _, e := range b.Entries {
			items.Set(e.Key, e.Item)
		}

		rel := OxarenPath(b.Namespace)
		if err := w.write(ctx, outputDir, rel, items); err != nil {
			return written, err
		}
		written = append(written, rel)
	}
	return written, nil
}

// WriteItemsAdder writes one contents/<namespace>/configs/items.yml per
// bucket and returns the written paths relative to outputDir.
func (w *Writer) WriteItemsAdder(ctx context.Context, outputDir string, buckets []convert.Bucket[itemsadder.Item]) ([]string, error) {
	written := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if err := checkNamespace(b.Namespace); err != nil {
			return written, err
		}

		rec := itemsadder.NewRecord(b.Namespace)
		for _, e := range b.Entries {
			var node yaml.Node
			if err := node.Encode(e.Item); err != nil {
				return written, fmt.Errorf("encode %s:%s: %w", b.Namespace, e.Key, err)
			}
			rec.Items.Set(e.Key, node)
		}

		rel := ItemsAdderPath(b.Namespace)
		if err := w.write(ctx, outputDir, rel, rec); err != nil {
			return written, err
		}
		written = append(written, rel)
	}
	return written, nil
}

// checkNamespace refuses namespaces that would not stay a single path
// element under the output directory.
func checkNamespace(namespace string) error {
	if !convert.ValidNamespace(namespace) {
		return fmt.Errorf("write namespace %q: %w", namespace, diagnostics.ErrInvalidNamespace)
	}
	return nil
}

func (w *Writer) write(ctx context.Context, outputDir, rel string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}

	return w.store.Write(ctx, path.Join(outputDir, rel), buf.Bytes())
}
