// Package diagnostics collects the per-record and per-item problems found
// during a conversion run. A run never stops on these; they are accumulated
// and shown to the user at the end.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by diagnostics, for use with errors.Is.
var (
	ErrLoad                     = errors.New("document could not be loaded")
	ErrMissingNamespace         = errors.New("missing namespace")
	ErrInvalidNamespace         = errors.New("invalid namespace")
	ErrDuplicateKey             = errors.New("duplicate item key")
	ErrMissingField             = errors.New("missing required field")
	ErrMalformedItem            = errors.New("malformed item")
	ErrUnknownAttributeModifier = errors.New("unknown attribute modifier")
	ErrUnsupportedFeature       = errors.New("unsupported feature")
	ErrEmptyDocument            = errors.New("empty document")
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindLoad                     Kind = "load"
	KindMissingNamespace         Kind = "missing-namespace"
	KindInvalidNamespace         Kind = "invalid-namespace"
	KindDuplicateKey             Kind = "duplicate-key"
	KindMissingField             Kind = "missing-field"
	KindMalformedItem            Kind = "malformed-item"
	KindUnknownAttributeModifier Kind = "unknown-attribute-modifier"
	KindUnsupportedFeature       Kind = "unsupported-feature"
	KindEmptyDocument            Kind = "empty-document"
)

// Severity separates errors (something was skipped) from warnings
// (something was dropped but the rest converted).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Location points at the record or item a diagnostic is about.
// Index is the item's position inside its record, or -1.
type Location struct {
	File      string
	Namespace string
	Key       string
	Index     int
}

// FileLocation returns a Location for a whole file.
func FileLocation(file string) Location {
	return Location{File: file, Index: -1}
}

// ItemLocation returns a Location for a single item.
func ItemLocation(file, namespace, key string, index int) Location {
	return Location{File: file, Namespace: namespace, Key: key, Index: index}
}

func (l Location) String() string {
	var parts []string
	if l.File != "" {
		parts = append(parts, l.File)
	}
	switch {
	case l.Namespace != "" && l.Key != "":
		parts = append(parts, l.Namespace+":"+l.Key)
	case l.Namespace != "":
		parts = append(parts, l.Namespace)
	case l.Key != "":
		parts = append(parts, l.Key)
	}
	if l.Index >= 0 && l.Key == "" {
		parts = append(parts, fmt.Sprintf("#%d", l.Index))
	}
	return strings.Join(parts, " ")
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Location Location

	// Item identifies the item in messages: its display name when known,
	// otherwise its position as "#<index>".
	Item string

	// Field is set for missing-field diagnostics.
	Field string

	Message string
	Err     error
}

func (d Diagnostic) Error() string {
	if loc := d.Location.String(); loc != "" {
		return fmt.Sprintf("%s: %s", loc, d.Message)
	}
	return d.Message
}

// Unwrap exposes the wrapped error so errors.Is matches the sentinel and any
// underlying cause.
func (d Diagnostic) Unwrap() []error {
	errs := []error{d.sentinel()}
	if d.Err != nil {
		errs = append(errs, d.Err)
	}
	return errs
}

func (d Diagnostic) sentinel() error {
	switch d.Kind {
	case KindLoad:
		return ErrLoad
	case KindMissingNamespace:
		return ErrMissingNamespace
	case KindInvalidNamespace:
		return ErrInvalidNamespace
	case KindDuplicateKey:
		return ErrDuplicateKey
	case KindMissingField:
		return ErrMissingField
	case KindMalformedItem:
		return ErrMalformedItem
	case KindUnknownAttributeModifier:
		return ErrUnknownAttributeModifier
	case KindEmptyDocument:
		return ErrEmptyDocument
	default:
		return ErrUnsupportedFeature
	}
}

// ItemLabel returns how an item is named in diagnostics.
func ItemLabel(displayName string, index int) string {
	if displayName != "" {
		return displayName
	}
	return fmt.Sprintf("#%d", index)
}

// NewLoadError reports a file that could not be read or parsed.
func NewLoadError(file string, err error) Diagnostic {
	return Diagnostic{
		Kind:     KindLoad,
		Severity: SeverityError,
		Location: FileLocation(file),
		Message:  fmt.Sprintf("could not load document: %v", err),
		Err:      err,
	}
}

// NewEmptyDocumentWarning reports a file with no YAML content.
func NewEmptyDocumentWarning(file string) Diagnostic {
	return Diagnostic{
		Kind:     KindEmptyDocument,
		Severity: SeverityWarning,
		Location: FileLocation(file),
		Message:  "document is empty, skipped",
	}
}

// NewMissingNamespaceError reports a record without info.namespace.
func NewMissingNamespaceError(file string) Diagnostic {
	return Diagnostic{
		Kind:     KindMissingNamespace,
		Severity: SeverityError,
		Location: FileLocation(file),
		Message:  "info.namespace is missing, record skipped",
	}
}

// NewInvalidNamespaceError reports a record whose namespace cannot be used as
// a file name.
func NewInvalidNamespaceError(file, namespace string) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidNamespace,
		Severity: SeverityError,
		Location: Location{File: file, Namespace: namespace, Index: -1},
		Message:  fmt.Sprintf("namespace %q may only contain a-z, 0-9, _ and -, record skipped", namespace),
	}
}

// NewDuplicateKeyError reports an item whose key was already converted from
// another file of the same namespace.
func NewDuplicateKeyError(loc Location, item, firstFile string) Diagnostic {
	return Diagnostic{
		Kind:     KindDuplicateKey,
		Severity: SeverityError,
		Location: loc,
		Item:     item,
		Message: fmt.Sprintf("item key %q is already defined in %s for namespace %q, skipped",
			loc.Key, firstFile, loc.Namespace),
	}
}

// NewMissingFieldError reports an item skipped for lack of a required field.
func NewMissingFieldError(loc Location, item, field string, err error) Diagnostic {
	return Diagnostic{
		Kind:     KindMissingField,
		Severity: SeverityError,
		Location: loc,
		Item:     item,
		Field:    field,
		Message:  fmt.Sprintf("item %q is missing required field %q, skipped", item, field),
		Err:      err,
	}
}

// NewMalformedItemError reports an item whose YAML does not match the schema.
func NewMalformedItemError(loc Location, item string, err error) Diagnostic {
	return Diagnostic{
		Kind:     KindMalformedItem,
		Severity: SeverityError,
		Location: loc,
		Item:     item,
		Message:  fmt.Sprintf("item %q could not be decoded: %v", item, err),
		Err:      err,
	}
}

// NewUnknownAttributeModifierError reports an item dropped because one of its
// attribute modifiers has no translation.
func NewUnknownAttributeModifierError(loc Location, item, modifier string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnknownAttributeModifier,
		Severity: SeverityError,
		Location: loc,
		Item:     item,
		Message:  fmt.Sprintf("item %q uses unknown attribute modifier %q, skipped", item, modifier),
	}
}

// NewUnsupportedFeatureWarning reports data that was dropped because the
// target schema cannot express it.
func NewUnsupportedFeatureWarning(loc Location, item, feature string) Diagnostic {
	msg := fmt.Sprintf("%s has no equivalent in the target schema and was dropped", feature)
	if item != "" {
		msg = fmt.Sprintf("item %q: %s", item, msg)
	}
	return Diagnostic{
		Kind:     KindUnsupportedFeature,
		Severity: SeverityWarning,
		Location: loc,
		Item:     item,
		Message:  msg,
	}
}
