// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// KeysSlice returns a newly allocated slice with the keys of the map, in no particular order.
func KeysSlice[M interface{ ~map[K]V }, K comparable, V any](m M) []K {
	return slices.Collect(maps.Keys(m))
}

// SortedKeysAndValues returns an interator over keys and values of a map m in a sorted fashion by the keys.
//
// It extracts the keys, sort them and then iterate over, so it's convenient but not fast.
func SortedKeysAndValues[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) iter.Seq2[K, V] {
	sortedKeys := slices.Collect(maps.Keys(m))
	slices.Sort(sortedKeys)
	return func(yield func(K, V) bool) {
		for _, key := range sortedKeys {
			if !yield(key, m[key]) {
				break
			}
		}
	}
}

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. Size is optional, and if given
// will reserve the expected size.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set[T] with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	for _, element := range elements {
		s.Insert(element)
	}
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}

// Iter iterates over the elements of the set, in no particular order.
func (s Set[T]) Iter() iter.Seq[T] {
	return maps.Keys(s)
}

// Sub returns `s - s2`, that is, all elements in `s` that are not in `s2`.
func (s Set[T]) Sub(s2 Set[T]) Set[T] {
	sub := MakeSet[T]()
	for k := range s {
		if !s2.Has(k) {
			sub.Insert(k)
		}
	}
	return sub
}

// Equal returns whether s and s2 hold exactly the same elements.
func (s Set[T]) Equal(s2 Set[T]) bool {
	if len(s) != len(s2) {
		return false
	}
	for k := range s {
		if !s2.Has(k) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the set.
func (s Set[T]) Clone() Set[T] {
	return maps.Clone(s)
}
