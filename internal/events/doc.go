// Package events provides subscription bookkeeping for components that react to
// external notifications (viewport scroll and resize, focus, selection changes).
//
// An Emitter fans a typed value out to its subscribers. A Group owns the
// subscriptions a component registers on mount and releases all of them on
// teardown, so a component never leaks listeners regardless of how it exits.
//
// All types are single-writer: they are meant to be driven from the Bubble Tea
// update loop and are not safe for concurrent use.
package events
