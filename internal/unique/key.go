package unique

import "fmt"

// Key identifies one slot at one generation. Generation 0 is never issued.
type Key struct {
	index      uint32
	generation uint32
}

// Null returns the key that never refers to a live slot.
func Null() Key { return Key{} }

func (k Key) Index() uint32      { return k.index }
func (k Key) Generation() uint32 { return k.generation }
func (k Key) IsNull() bool       { return k.generation == 0 }

func (k Key) String() string { return fmt.Sprintf("%d#%d", k.index, k.generation) }

// KeyAllocator hands out keys. Freed keys are kept as gaps, already bumped
// to the generation their next holder will carry.
type KeyAllocator struct {
	gaps []Key
	next uint32
	live int
}

func NewKeyAllocator() *KeyAllocator {
	return &KeyAllocator{gaps: make([]Key, 0, 16)}
}

// Alloc reuses the most recently freed index if any, else mints a new index at generation 1.
func (a *KeyAllocator) Alloc() Key {
	a.live++
	if n := len(a.gaps); n > 0 {
		key := a.gaps[n-1]
		a.gaps = a.gaps[:n-1]
		return key
	}
	key := Key{index: a.next, generation: 1}
	a.next++
	return key
}

// Free makes the key's index available again at generation+1. The caller must not
// free a key twice; the null key is ignored.
func (a *KeyAllocator) Free(key Key) {
	if key.IsNull() {
		return
	}
	a.gaps = append(a.gaps, Key{index: key.index, generation: key.generation + 1})
	a.live--
}

// Live returns the number of allocated keys not yet freed.
func (a *KeyAllocator) Live() int { return a.live }

// Cap returns the size of the index space handed out so far.
func (a *KeyAllocator) Cap() int { return int(a.next) }
