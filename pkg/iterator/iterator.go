package iterator

import "iter"

func Collect[T any](it iter.Seq[T]) []T {
	p := []T{}
	for value := range it {
		p = append(p, value)
	}
	return p
}

func Collect2[K, V any](it iter.Seq2[K, V]) ([]K, []V) {
	leftElems := []K{}
	rightElems := []V{}
	for left, right := range it {
		leftElems = append(leftElems, left)
		rightElems = append(rightElems, right)
	}
	return leftElems, rightElems
}

// MapKeys applies f to the left element of each pair as it is yielded.
func MapKeys[K, J, V any](it iter.Seq2[K, V], f func(K) J) iter.Seq2[J, V] {
	return func(yield func(J, V) bool) {
		for left, right := range it {
			if !yield(f(left), right) {
				return
			}
		}
	}
}

// Keys drops the right element of each pair.
func Keys[K, V any](it iter.Seq2[K, V]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for left := range it {
			if !yield(left) {
				return
			}
		}
	}
}
