package sequence

import "iter"

// Iterator is a chainable wrapper over iter.Seq. Stages are lazy; nothing
// runs until a terminal method (Collect, Count, Last, Reduce) is called.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// FromSeq wraps an existing sequence, such as a trajectory replay.
func FromSeq[T any](seq iter.Seq[T]) *Iterator[T] {
	return &Iterator[T]{seq: seq}
}

func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Filter keeps elements matching pred.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Take stops after n elements.
func (i *Iterator[T]) Take(n int) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			if n <= 0 {
				return
			}
			count := 0
			i.seq(func(v T) bool {
				count++
				return yield(v) && count < n
			})
		},
	}
}

func (i *Iterator[T]) Count() int {
	n := 0
	i.seq(func(T) bool {
		n++
		return true
	})
	return n
}

// Last returns the final element, if any.
func (i *Iterator[T]) Last() (T, bool) {
	var last T
	found := false
	i.seq(func(v T) bool {
		last = v
		found = true
		return true
	})
	return last, found
}

// Reduce folds the sequence into an accumulator of a different type.
func Reduce[T, A any](i *Iterator[T], init A, fn func(A, T) A) A {
	acc := init
	i.seq(func(v T) bool {
		acc = fn(acc, v)
		return true
	})
	return acc
}

// GroupBy buckets elements by key, keeping their order within a bucket.
func GroupBy[T any, K comparable](i *Iterator[T], keyFn func(T) K) map[K][]T {
	out := make(map[K][]T)
	i.seq(func(v T) bool {
		k := keyFn(v)
		out[k] = append(out[k], v)
		return true
	})
	return out
}
