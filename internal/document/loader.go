// Package document loads item config files from storage and writes converted
// namespaces back.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/storage"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

// Directory names of the two layouts.
const (
	ContentsDir = "contents"
	ItemsDir    = "items"
	RecipesDir  = "recipes"
)

// ErrInputNotFound is returned when the input directory does not exist.
var ErrInputNotFound = errors.New("input directory not found")

// Loader reads documents from storage. Unreadable or unparsable files become
// load diagnostics; only storage failures while listing are returned as
// errors.
type Loader struct {
	store  storage.Storage
	logger *pterm.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(store storage.Storage, logger *pterm.Logger) *Loader {
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}
	return &Loader{store: store, logger: logger}
}

// LoadItemsAdder loads every YAML file below <inputDir>/contents.
func (l *Loader) LoadItemsAdder(ctx context.Context, inputDir string) ([]*itemsadder.Record, diagnostics.Diagnostics, error) {
	var diags diagnostics.Diagnostics

	files, err := l.yamlFiles(ctx, inputDir, ContentsDir)
	if err != nil {
		return nil, diags, err
	}

	records := make([]*itemsadder.Record, 0, len(files))
	for _, rel := range files {
		root, ok := l.parse(ctx, inputDir, rel, &diags)
		if !ok {
			continue
		}

		rec := &itemsadder.Record{}
		if err := root.Decode(rec); err != nil {
			diags.PushError(diagnostics.NewLoadError(rel, err))
			continue
		}
		rec.Path = rel
		records = append(records, rec)
	}

	l.logger.Debug("loaded itemsadder records", l.logger.Args("files", len(files), "records", len(records)))
	return records, diags, nil
}

// LoadOxaren loads every YAML file below <inputDir>/items and
// <inputDir>/recipes.
func (l *Loader) LoadOxaren(ctx context.Context, inputDir string) ([]*oxaren.Document, diagnostics.Diagnostics, error) {
	var diags diagnostics.Diagnostics
	var docs []*oxaren.Document

	for _, kind := range []oxaren.DocumentKind{oxaren.KindItems, oxaren.KindRecipes} {
		dir := ItemsDir
		if kind == oxaren.KindRecipes {
			dir = RecipesDir
		}

		files, err := l.yamlFiles(ctx, inputDir, dir)
		if err != nil {
			return nil, diags, err
		}

		for _, rel := range files {
			root, ok := l.parse(ctx, inputDir, rel, &diags)
			if !ok {
				continue
			}

			doc := &oxaren.Document{
				Path:      rel,
				Namespace: OxarenNamespace(strings.TrimPrefix(rel, dir+"/")),
				Kind:      kind,
			}
			if kind == oxaren.KindItems {
				if err := root.Decode(&doc.Items); err != nil {
					diags.PushError(diagnostics.NewLoadError(rel, err))
					continue
				}
			}
			docs = append(docs, doc)
		}
	}

	l.logger.Debug("loaded oxaren documents", l.logger.Args("documents", len(docs)))
	return docs, diags, nil
}

// OxarenNamespace derives the namespace of a file below items/ or recipes/:
// the first directory when nested, otherwise the file stem.
func OxarenNamespace(rel string) string {
	if dir, _, found := strings.Cut(rel, "/"); found {
		return dir
	}
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// yamlFiles lists the YAML files below inputDir/sub as paths relative to
// inputDir. A missing sub directory yields no files.
func (l *Loader) yamlFiles(ctx context.Context, inputDir, sub string) ([]string, error) {
	isDir, err := l.store.IsDir(ctx, inputDir)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, fmt.Errorf("%s: %w", inputDir, ErrInputNotFound)
	}

	files, err := l.store.List(ctx, path.Join(inputDir, sub))
	if errors.Is(err, storage.ErrNotFound) {
		l.logger.Debug("no such directory", l.logger.Args("dir", sub))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	files = lo.Filter(files, func(f string, _ int) bool {
		switch strings.ToLower(path.Ext(f)) {
		case ".yml", ".yaml":
			return true
		}
		return false
	})
	return lo.Map(files, func(f string, _ int) string {
		return path.Join(sub, f)
	}), nil
}

// parse reads and parses one file. ok is false when the file produced a
// diagnostic instead of a document.
func (l *Loader) parse(ctx context.Context, inputDir, rel string, diags *diagnostics.Diagnostics) (*yaml.Node, bool) {
	content, err := l.store.Read(ctx, path.Join(inputDir, rel))
	if err != nil {
		diags.PushError(diagnostics.NewLoadError(rel, err))
		return nil, false
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		diags.PushError(diagnostics.NewLoadError(rel, err))
		return nil, false
	}

	if len(doc.Content) == 0 || doc.Content[0].Tag == "!!null" {
		diags.PushWarning(diagnostics.NewEmptyDocumentWarning(rel))
		return nil, false
	}

	return doc.Content[0], true
}
