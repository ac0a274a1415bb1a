package events

// Group owns a set of subscriptions and releases them together.
// The zero value is ready to use.
type Group struct {
	subs     []Unsubscribe
	disposed bool
}

// Add takes ownership of unsub. Adding to a disposed group releases unsub immediately.
func (g *Group) Add(unsub Unsubscribe) {
	if unsub == nil {
		return
	}
	if g.disposed {
		unsub()
		return
	}
	g.subs = append(g.subs, unsub)
}

// On subscribes fn to e and records the subscription in the group.
func On[T any](g *Group, e *Emitter[T], fn func(T)) {
	g.Add(e.Subscribe(fn))
}

// Len returns the number of subscriptions currently owned.
func (g *Group) Len() int {
	return len(g.subs)
}

// Disposed reports whether Dispose has been called.
func (g *Group) Disposed() bool {
	return g.disposed
}

// Dispose releases every owned subscription in reverse registration order.
// It is idempotent and safe to defer.
func (g *Group) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	for i := len(g.subs) - 1; i >= 0; i-- {
		g.subs[i]()
	}
	g.subs = nil
}
