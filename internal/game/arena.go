package game

// Handle addresses an arena slot. A handle stays valid until the value is
// removed; afterwards the slot generation moves on and the handle is stale.
type Handle struct {
	Index uint32
	Gen   uint32
}

// NoHandle never resolves.
var NoHandle = Handle{}

// Valid reports whether h was ever issued. It does not check liveness.
func (h Handle) Valid() bool {
	return h.Gen != 0
}

type slot[T any] struct {
	gen   uint32
	alive bool
	value T
}

// Arena stores values in reusable slots addressed by generation tagged
// handles. Iteration follows insertion order, and values may be removed
// (or inserted) while iterating.
type Arena[T any] struct {
	slots     []slot[T]
	free      []uint32
	order     []Handle
	live      int
	iterating int
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]slot[T], 0, capacity),
		order: make([]Handle, 0, capacity),
	}
}

func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.alive = true
	s.value = v
	a.live++

	h := Handle{Index: idx, Gen: s.gen}
	a.order = append(a.order, h)
	return h
}

// Get returns a pointer to the live value behind h. The pointer is only
// valid until the next Insert.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.alive || s.gen != h.Gen {
		return nil, false
	}
	return &s.value, true
}

func (a *Arena[T]) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	s := &a.slots[h.Index]
	var zero T
	s.value = zero
	s.alive = false
	a.free = append(a.free, h.Index)
	a.live--
	if a.iterating == 0 {
		a.compact()
	}
	return true
}

func (a *Arena[T]) Len() int {
	return a.live
}

// Each visits live values oldest first until fn returns false. Values
// inserted during the walk are not visited.
func (a *Arena[T]) Each(fn func(h Handle, v *T) bool) {
	a.iterating++
	n := len(a.order)
	for i := 0; i < n; i++ {
		h := a.order[i]
		v, ok := a.Get(h)
		if !ok {
			continue
		}
		if !fn(h, v) {
			break
		}
	}
	a.done()
}

// Reverse visits live values newest first until fn returns false.
func (a *Arena[T]) Reverse(fn func(h Handle, v *T) bool) {
	a.iterating++
	for i := len(a.order) - 1; i >= 0; i-- {
		h := a.order[i]
		v, ok := a.Get(h)
		if !ok {
			continue
		}
		if !fn(h, v) {
			break
		}
	}
	a.done()
}

// Clear removes every value. Generations are kept so handles issued before
// the clear stay stale.
func (a *Arena[T]) Clear() {
	var zero T
	a.free = a.free[:0]
	for i := range a.slots {
		a.slots[i].alive = false
		a.slots[i].value = zero
		a.free = append(a.free, uint32(i))
	}
	a.order = a.order[:0]
	a.live = 0
}

func (a *Arena[T]) done() {
	a.iterating--
	if a.iterating == 0 && len(a.order) != a.live {
		a.compact()
	}
}

func (a *Arena[T]) compact() {
	kept := a.order[:0]
	for _, h := range a.order {
		if _, ok := a.Get(h); ok {
			kept = append(kept, h)
		}
	}
	a.order = kept
}
