package convert

import (
	"github.com/oria-mc/oria/convert/diagnostics"
)

// Entry is one converted item under its original key.
type Entry[T any] struct {
	Key  string
	Item T
}

// Bucket holds the converted items of one namespace, in input order.
type Bucket[T any] struct {
	Namespace string
	Entries   []Entry[T]
}

// NamespacedEntry is an Entry together with its namespace.
type NamespacedEntry[T any] struct {
	Namespace string
	Key       string
	Item      T
}

// Result is the outcome of one conversion run.
type Result[T any] struct {
	// Buckets are ordered by first occurrence of the namespace in the input.
	// Namespaces where every item failed have no bucket.
	Buckets []Bucket[T]

	// Converted counts items present in Buckets; Skipped counts items
	// dropped because of an error diagnostic.
	Converted int
	Skipped   int

	Diagnostics diagnostics.Diagnostics
}

// Bucket returns the bucket for namespace.
func (r *Result[T]) Bucket(namespace string) (Bucket[T], bool) {
	for _, b := range r.Buckets {
		if b.Namespace == namespace {
			return b, true
		}
	}
	return Bucket[T]{}, false
}

// Namespaces returns the namespaces present in the result, in order.
func (r *Result[T]) Namespaces() []string {
	out := make([]string, len(r.Buckets))
	for i, b := range r.Buckets {
		out[i] = b.Namespace
	}
	return out
}

// Entries flattens the buckets into (namespace, key, item) triples.
func (r *Result[T]) Entries() []NamespacedEntry[T] {
	var out []NamespacedEntry[T]
	for _, b := range r.Buckets {
		for _, e := range b.Entries {
			out = append(out, NamespacedEntry[T]{Namespace: b.Namespace, Key: e.Key, Item: e.Item})
		}
	}
	return out
}
