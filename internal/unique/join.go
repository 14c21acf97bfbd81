package unique

import "iter"

// Pair carries the two values joined under one key.
type Pair[A, B any] struct {
	A A
	B B
}

// Join merges two key-ascending sequences and yields only the keys present in
// both, in ascending order. It runs in O(|a|+|b|).
//
// Two keys with the same index and different generations are not the same key;
// both sides advance past that index.
func Join[A, B any](a iter.Seq2[Key, A], b iter.Seq2[Key, B]) iter.Seq2[Key, Pair[A, B]] {
	return func(yield func(Key, Pair[A, B]) bool) {
		nextA, stopA := iter.Pull2(a)
		defer stopA()
		nextB, stopB := iter.Pull2(b)
		defer stopB()

		ka, va, okA := nextA()
		kb, vb, okB := nextB()
		for okA && okB {
			switch {
			case ka.index < kb.index:
				ka, va, okA = nextA()
			case ka.index > kb.index:
				kb, vb, okB = nextB()
			default:
				if ka.generation == kb.generation {
					if !yield(ka, Pair[A, B]{A: va, B: vb}) {
						return
					}
				}
				ka, va, okA = nextA()
				kb, vb, okB = nextB()
			}
		}
	}
}

// Collect drains a keyed sequence into a slice of keys. Mostly useful in tests
// and for snapshots that must survive table mutation.
func Collect[V any](seq iter.Seq2[Key, V]) []Key {
	var keys []Key
	for k := range seq {
		keys = append(keys, k)
	}
	return keys
}
