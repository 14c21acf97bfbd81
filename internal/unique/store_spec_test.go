package unique

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("KeyAllocator", func() {
	var keys *KeyAllocator

	BeforeEach(func() {
		keys = NewKeyAllocator()
	})

	It("mints fresh indices at generation 1", func() {
		a, b := keys.Alloc(), keys.Alloc()
		Expect(a.Index()).To(Equal(uint32(0)))
		Expect(b.Index()).To(Equal(uint32(1)))
		Expect(a.Generation()).To(Equal(uint32(1)))
		Expect(a).NotTo(Equal(b))
		Expect(keys.Live()).To(Equal(2))
	})

	It("reuses a freed index at a strictly greater generation", func() {
		a := keys.Alloc()
		keys.Free(a)
		b := keys.Alloc()
		Expect(b.Index()).To(Equal(a.Index()))
		Expect(b.Generation()).To(BeNumerically(">", a.Generation()))
		Expect(b).NotTo(Equal(a))

		keys.Free(b)
		c := keys.Alloc()
		Expect(c.Generation()).To(BeNumerically(">", b.Generation()))
	})

	It("never returns two equal live keys", func() {
		live := map[Key]bool{}
		var order []Key
		for i := 0; i < 200; i++ {
			if i%3 == 2 && len(order) > 0 {
				victim := order[0]
				order = order[1:]
				delete(live, victim)
				keys.Free(victim)
				continue
			}
			k := keys.Alloc()
			Expect(live).NotTo(HaveKey(k))
			live[k] = true
			order = append(order, k)
		}
		Expect(keys.Live()).To(Equal(len(live)))
	})

	It("ignores the null key on free", func() {
		keys.Free(Null())
		Expect(keys.Alloc().Index()).To(Equal(uint32(0)))
	})
})

var _ = Describe("Store", func() {
	var (
		keys  *KeyAllocator
		store *Store[string]
	)

	BeforeEach(func() {
		keys = NewKeyAllocator()
		store = NewStore[string]()
	})

	It("returns what was inserted", func() {
		k := keys.Alloc()
		store.Insert(k, "crate")
		v, ok := store.Get(k)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("crate"))
		Expect(store.Contains(k)).To(BeTrue())
		Expect(store.Len()).To(Equal(1))
	})

	It("overwrites on repeated insert", func() {
		k := keys.Alloc()
		store.Insert(k, "a")
		store.Insert(k, "b")
		Expect(valueOf(store, k)).To(Equal("b"))
		Expect(store.Len()).To(Equal(1))
	})

	It("reports absence after remove", func() {
		k := keys.Alloc()
		store.Insert(k, "a")
		store.Remove(k)
		_, ok := store.Get(k)
		Expect(ok).To(BeFalse())
		Expect(store.GetMut(k)).To(BeNil())
		Expect(store.Len()).To(Equal(0))
	})

	It("rejects a stale key even after its index is reused", func() {
		old := keys.Alloc()
		store.Insert(old, "old")
		keys.Free(old)
		store.Remove(old)

		fresh := keys.Alloc()
		Expect(fresh.Index()).To(Equal(old.Index()))
		store.Insert(fresh, "fresh")

		_, ok := store.Get(old)
		Expect(ok).To(BeFalse())
		Expect(store.Contains(old)).To(BeFalse())
		Expect(valueOf(store, fresh)).To(Equal("fresh"))
	})

	It("does not let a stale key remove the live entry", func() {
		old := keys.Alloc()
		keys.Free(old)
		fresh := keys.Alloc()
		store.Insert(fresh, "fresh")

		store.Remove(old)
		Expect(store.Contains(fresh)).To(BeTrue())
	})

	It("treats never-inserted and null keys as absent", func() {
		k := keys.Alloc()
		Expect(store.Contains(k)).To(BeFalse())
		Expect(store.Contains(Null())).To(BeFalse())
		store.Insert(Null(), "ignored")
		Expect(store.Len()).To(Equal(0))
	})

	It("iterates in ascending index order regardless of insertion order", func() {
		for i := 0; i < 6; i++ {
			keys.Alloc()
		}
		store.Insert(Key{index: 5, generation: 1}, "five")
		store.Insert(Key{index: 2, generation: 1}, "two")
		store.Insert(Key{index: 4, generation: 1}, "four")

		var got []uint32
		var vals []string
		for k, v := range store.Iter() {
			got = append(got, k.Index())
			vals = append(vals, v)
		}
		Expect(got).To(Equal([]uint32{2, 4, 5}))
		Expect(vals).To(Equal([]string{"two", "four", "five"}))
	})

	It("mutates in place through IterMut", func() {
		a, b := keys.Alloc(), keys.Alloc()
		store.Insert(a, "a")
		store.Insert(b, "b")
		for _, v := range store.IterMut() {
			*v += "!"
		}
		Expect(valueOf(store, a)).To(Equal("a!"))
		Expect(valueOf(store, b)).To(Equal("b!"))
	})

	It("stops iterating when the consumer breaks", func() {
		for i := 0; i < 4; i++ {
			store.Insert(keys.Alloc(), "x")
		}
		n := 0
		for range store.Iter() {
			n++
			if n == 2 {
				break
			}
		}
		Expect(n).To(Equal(2))
	})
})

func valueOf(s *Store[string], k Key) string {
	v, _ := s.Get(k)
	return v
}
