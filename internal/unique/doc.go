// Package unique implements generational-index storage.
//
//   - [KeyAllocator]: issues [Key] values and recycles freed slots at a higher generation
//   - [Store]: one attribute table, a sparse array of values indexed by key
//   - [Join]: ordered merge of two tables' iterations over the keys both contain
//
// A [Key] obtained before its slot was freed never matches again: every lookup
// with it reports absence, even after the index is reused.
//
// # Example
//
//	keys := unique.NewKeyAllocator()
//	vel := unique.NewStore[dynamo.Vec2]()
//	acc := unique.NewStore[dynamo.Vec2]()
//
//	k := keys.Alloc()
//	vel.Insert(k, dynamo.Vec2{})
//	acc.Insert(k, dynamo.V(0.003, 0))
//
//	for _, p := range unique.Join(vel.IterMut(), acc.Iter()) {
//	    *p.A = p.A.Add(p.B)
//	}
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. Confine allocator
// and tables to one goroutine.
package unique
