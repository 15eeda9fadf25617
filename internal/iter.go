// Package internal holds helpers shared by the z80emu packages.
package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
// Sequences are visited in order; a key repeated by a later sequence is yielded again.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
