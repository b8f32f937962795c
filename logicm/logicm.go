// Package logicm implements the backtracking nondeterminism primitive from
// spec §4.D: mzero, mplus, and a fair-interleaving bind, realized directly
// as Go 1.23 range-over-func iterators. MPlus uses iter.Pull to turn each
// branch into an incremental "pull one answer" call, which is exactly what
// round-robin interleaving needs; no hand-rolled goroutine/channel
// scheduler is required.
package logicm

import "iter"

// Stream is a (possibly infinite) answer stream.
type Stream[A any] iter.Seq[A]

// MZero is the stream with no answers.
func MZero[A any]() Stream[A] {
	return func(func(A) bool) {}
}

// Unit is the stream containing exactly one answer.
func Unit[A any](a A) Stream[A] {
	return func(yield func(A) bool) {
		yield(a)
	}
}

// MPlus interleaves the answers of a and b round-robin, so that an
// infinite a can never starve b (spec §4.D "Fair interleaving").
func MPlus[A any](a, b Stream[A]) Stream[A] {
	return func(yield func(A) bool) {
		nextA, stopA := iter.Pull(iter.Seq[A](a))
		defer stopA()
		nextB, stopB := iter.Pull(iter.Seq[A](b))
		defer stopB()

		aDone, bDone := false, false
		for !aDone || !bDone {
			if !aDone {
				v, ok := nextA()
				if !ok {
					aDone = true
				} else if !yield(v) {
					return
				}
			}
			if !bDone {
				v, ok := nextB()
				if !ok {
					bDone = true
				} else if !yield(v) {
					return
				}
			}
		}
	}
}

// Bind is the fair-interleaving bind (">>-"): every answer of s is fed
// through f, and the resulting streams are merged via MPlus rather than
// concatenated, so that later answers of s are not starved by an infinite
// f applied to an earlier one.
func Bind[A, B any](s Stream[A], f func(A) Stream[B]) Stream[B] {
	return func(yield func(B) bool) {
		next, stop := iter.Pull(iter.Seq[A](s))
		defer stop()

		a, ok := next()
		if !ok {
			return
		}
		rest := Stream[A](func(yield2 func(A) bool) {
			for {
				v, ok := next()
				if !ok {
					return
				}
				if !yield2(v) {
					return
				}
			}
		})
		merged := MPlus(f(a), Bind(rest, f))
		for b := range iter.Seq[B](merged) {
			if !yield(b) {
				return
			}
		}
	}
}

// MPlusAll folds MPlus (and so fair interleaving) across every branch,
// used by rigid resolution where a goal may match any number of clauses.
func MPlusAll[A any](branches ...Stream[A]) Stream[A] {
	acc := MZero[A]()
	for _, b := range branches {
		acc = MPlus(acc, b)
	}
	return acc
}

// First returns the first answer of s, if any. Ranging over s with an
// early break, as First does, is exactly the "dropping the answer stream
// aborts the search" cancellation model from spec §5.
func First[A any](s Stream[A]) (a A, ok bool) {
	for v := range iter.Seq[A](s) {
		return v, true
	}
	return a, false
}

// Take returns the first n answers of s (or fewer, if s is exhausted
// first), implementing the "first N answers" cancellation mode from §4.D.
func Take[A any](s Stream[A], n int) []A {
	if n <= 0 {
		return nil
	}
	out := make([]A, 0, n)
	for v := range iter.Seq[A](s) {
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

// All drains every answer of s into a slice. Only safe for streams known to
// be finite.
func All[A any](s Stream[A]) []A {
	var out []A
	for v := range iter.Seq[A](s) {
		out = append(out, v)
	}
	return out
}
