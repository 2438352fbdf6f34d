package set

import (
	"cmp"
	"iter"
	"slices"
)

type Set[T cmp.Ordered] map[T]struct{}

func New[T cmp.Ordered](items ...T) Set[T] {
	s := make(Set[T], len(items))
	s.Add(items...)
	return s
}

// Add adds items to the set
func (s Set[T]) Add(items ...T) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

// Contains checks if an item exists in the set
func (s Set[T]) Contains(item T) bool {
	_, exists := s[item]
	return exists
}

func (s Set[T]) ContainsAll(items ...T) bool {
	for _, item := range items {
		if !s.Contains(item) {
			return false
		}
	}
	return true
}

// Size returns the number of items in the set
func (s Set[T]) Size() int {
	return len(s)
}

// Items yields the members in ascending order so callers that print or
// compare them get a stable sequence.
func (s Set[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s.Sorted() {
			if !yield(item) {
				return
			}
		}
	}
}

// Sorted returns the members as an ascending slice.
func (s Set[T]) Sorted() []T {
	items := make([]T, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	slices.Sort(items)
	return items
}
