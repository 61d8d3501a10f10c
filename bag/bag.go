// Package bag implements an immutable sorted multiset.
package bag

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Element is implemented by types that can be stored in a Bag. Compare
// returns a negative number, zero or a positive number when the receiver
// sorts before, together with or after the argument.
type Element[T any] interface {
	comparable
	Compare(other T) int
}

// Bag is an immutable multiset whose elements are kept in ascending order.
// The zero value is the empty bag.
type Bag[T Element[T]] struct {
	items []T
}

func compare[T Element[T]](a, b T) int {
	return a.Compare(b)
}

func Of[T Element[T]](items ...T) Bag[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, compare[T])
	return Bag[T]{items: sorted}
}

// OfN returns a bag holding n copies of item.
func OfN[T Element[T]](n int, item T) Bag[T] {
	return NewBuilder[T]().AddN(n, item).Build()
}

func (b Bag[T]) Size() int {
	return len(b.items)
}

func (b Bag[T]) IsEmpty() bool {
	return len(b.items) == 0
}

// Get returns the i-th smallest element.
func (b Bag[T]) Get(i int) T {
	return b.items[i]
}

// ToSlice returns the elements in ascending order.
func (b Bag[T]) ToSlice() []T {
	return slices.Clone(b.items)
}

func (b Bag[T]) CountOf(item T) int {
	count := 0
	for _, it := range b.items {
		if it == item {
			count++
		}
	}
	return count
}

// Distinct returns every element once, in ascending order.
func (b Bag[T]) Distinct() []T {
	distinct := make([]T, 0, len(b.items))
	for i, it := range b.items {
		if i == 0 || it != b.items[i-1] {
			distinct = append(distinct, it)
		}
	}
	return distinct
}

// Contains reports whether every element of other occurs in b at least as
// many times as in other.
func (b Bag[T]) Contains(other Bag[T]) bool {
	for _, it := range other.Distinct() {
		if b.CountOf(it) < other.CountOf(it) {
			return false
		}
	}
	return true
}

func (b Bag[T]) Union(other Bag[T]) Bag[T] {
	merged := make([]T, 0, len(b.items)+len(other.items))
	i, j := 0, 0
	for i < len(b.items) && j < len(other.items) {
		if b.items[i].Compare(other.items[j]) <= 0 {
			merged = append(merged, b.items[i])
			i++
		} else {
			merged = append(merged, other.items[j])
			j++
		}
	}
	merged = append(merged, b.items[i:]...)
	merged = append(merged, other.items[j:]...)
	return Bag[T]{items: merged}
}

// Difference removes from b as many copies of each element as other holds.
func (b Bag[T]) Difference(other Bag[T]) Bag[T] {
	removed := make(map[T]int)
	for _, it := range other.items {
		removed[it]++
	}
	kept := make([]T, 0, len(b.items))
	for _, it := range b.items {
		if removed[it] > 0 {
			removed[it]--
			continue
		}
		kept = append(kept, it)
	}
	return Bag[T]{items: kept}
}

func (b Bag[T]) Equal(other Bag[T]) bool {
	return slices.Equal(b.items, other.items)
}

// Filter returns the elements for which keep returns true.
func (b Bag[T]) Filter(keep func(T) bool) Bag[T] {
	kept := make([]T, 0, len(b.items))
	for _, it := range b.items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	return Bag[T]{items: kept}
}

// SubsetsOfSize enumerates the distinct sub-multisets of b holding exactly k
// elements, in lexicographic order of their sorted contents.
func (b Bag[T]) SubsetsOfSize(k int) []Bag[T] {
	if k < 0 || k > len(b.items) {
		return nil
	}
	distinct := b.Distinct()
	counts := make([]int, len(distinct))
	for i, it := range distinct {
		counts[i] = b.CountOf(it)
	}

	var subsets []Bag[T]
	current := make([]T, 0, k)
	var walk func(from, remaining int)
	walk = func(from, remaining int) {
		if remaining == 0 {
			subsets = append(subsets, Bag[T]{items: slices.Clone(current)})
			return
		}
		for i := from; i < len(distinct); i++ {
			for n := min(counts[i], remaining); n >= 1; n-- {
				for c := 0; c < n; c++ {
					current = append(current, distinct[i])
				}
				walk(i+1, remaining-n)
				current = current[:len(current)-n]
			}
		}
	}
	walk(0, k)
	return subsets
}

func (b Bag[T]) String() string {
	parts := make([]string, len(b.items))
	for i, it := range b.items {
		parts[i] = fmt.Sprint(it)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Builder accumulates elements before producing a Bag.
type Builder[T Element[T]] struct {
	items []T
}

func NewBuilder[T Element[T]]() *Builder[T] {
	return &Builder[T]{}
}

func (bl *Builder[T]) Add(item T) *Builder[T] {
	bl.items = append(bl.items, item)
	return bl
}

func (bl *Builder[T]) AddN(n int, item T) *Builder[T] {
	for i := 0; i < n; i++ {
		bl.items = append(bl.items, item)
	}
	return bl
}

func (bl *Builder[T]) AddAll(other Bag[T]) *Builder[T] {
	bl.items = append(bl.items, other.items...)
	return bl
}

func (bl *Builder[T]) Size() int {
	return len(bl.items)
}

func (bl *Builder[T]) Build() Bag[T] {
	return Of(bl.items...)
}
