package events

// Unsubscribe releases a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// Emitter delivers values of type T to registered handlers in subscription order.
type Emitter[T any] struct {
	nextID   int
	order    []int
	handlers map[int]func(T)
}

// Subscribe registers fn and returns the handle that removes it.
func (e *Emitter[T]) Subscribe(fn func(T)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	if e.handlers == nil {
		e.handlers = make(map[int]func(T))
	}

	id := e.nextID
	e.nextID++
	e.handlers[id] = fn
	e.order = append(e.order, id)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		e.remove(id)
	}
}

// Emit calls every live handler with v. Handlers removed during emission are skipped.
func (e *Emitter[T]) Emit(v T) {
	ids := make([]int, len(e.order))
	copy(ids, e.order)

	for _, id := range ids {
		if fn, ok := e.handlers[id]; ok {
			fn(v)
		}
	}
}

// Len returns the number of live subscriptions.
func (e *Emitter[T]) Len() int {
	return len(e.handlers)
}

func (e *Emitter[T]) remove(id int) {
	delete(e.handlers, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			return
		}
	}
}
