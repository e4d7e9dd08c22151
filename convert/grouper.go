package convert

import (
	"github.com/oria-mc/oria/convert/diagnostics"
)

// namespaceGroup holds the records of one namespace in input order.
type namespaceGroup[R any] struct {
	namespace string
	records   []R
}

// groupByNamespace partitions records by namespace. Groups are returned in
// order of first occurrence and records keep their relative order. Records
// without a namespace or with one outside the namespace charset are reported
// and skipped; reserved namespaces are dropped silently.
func groupByNamespace[R any](
	records []R,
	namespaceOf func(R) string,
	fileOf func(R) string,
	diags *diagnostics.Diagnostics,
) []namespaceGroup[R] {
	var groups []namespaceGroup[R]
	index := make(map[string]int)

	for _, rec := range records {
		ns := namespaceOf(rec)
		if ns == "" {
			diags.PushError(diagnostics.NewMissingNamespaceError(fileOf(rec)))
			continue
		}
		if !ValidNamespace(ns) {
			diags.PushError(diagnostics.NewInvalidNamespaceError(fileOf(rec), ns))
			continue
		}
		if IsReservedNamespace(ns) {
			continue
		}

		i, ok := index[ns]
		if !ok {
			i = len(groups)
			index[ns] = i
			groups = append(groups, namespaceGroup[R]{namespace: ns})
		}
		groups[i].records = append(groups[i].records, rec)
	}

	return groups
}
