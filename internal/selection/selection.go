// Package selection tracks which items of a list are selected and which one has focus.
package selection

import (
	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/events"
)

// Keyed is implemented by items with a stable unique key.
type Keyed interface {
	Key() string
}

// Selection holds selected keys and the focused key for the current item set and
// notifies subscribers whenever either changes.
type Selection struct {
	mode     columns.SelectionMode
	keys     []string
	known    map[string]struct{}
	selected map[string]struct{}
	focused  string
	changed  events.Emitter[struct{}]
}

// New returns an empty selection in the given mode.
func New(mode columns.SelectionMode) *Selection {
	return &Selection{
		mode:     mode,
		known:    make(map[string]struct{}),
		selected: make(map[string]struct{}),
	}
}

// OnChange subscribes to selection and focus changes.
func (s *Selection) OnChange(fn func()) events.Unsubscribe {
	return s.changed.Subscribe(func(struct{}) { fn() })
}

// Mode returns the selection mode.
func (s *Selection) Mode() columns.SelectionMode {
	return s.mode
}

// SetMode switches the mode. Switching to single keeps at most one selected key;
// switching to none clears the selection.
func (s *Selection) SetMode(mode columns.SelectionMode) {
	if s.mode == mode {
		return
	}
	s.mode = mode
	switch mode {
	case columns.SelectionNone:
		clear(s.selected)
	case columns.SelectionSingle:
		if len(s.selected) > 1 {
			keep := s.firstSelected()
			clear(s.selected)
			s.selected[keep] = struct{}{}
		}
	case columns.SelectionMultiple:
	}
	s.notify()
}

// SetItems replaces the item set. Keys that disappeared are deselected; when
// shouldClear is set the whole selection is dropped. Focus moves to the first
// item if the focused key is gone.
func (s *Selection) SetItems(items []Keyed, shouldClear bool) {
	s.keys = s.keys[:0]
	clear(s.known)
	for _, it := range items {
		k := it.Key()
		s.keys = append(s.keys, k)
		s.known[k] = struct{}{}
	}

	if shouldClear {
		clear(s.selected)
	} else {
		for k := range s.selected {
			if _, ok := s.known[k]; !ok {
				delete(s.selected, k)
			}
		}
	}

	if _, ok := s.known[s.focused]; !ok {
		s.focused = ""
		if len(s.keys) > 0 {
			s.focused = s.keys[0]
		}
	}
	s.notify()
}

// Len returns the number of items.
func (s *Selection) Len() int {
	return len(s.keys)
}

// IsKeySelected reports whether key is selected.
func (s *Selection) IsKeySelected(key string) bool {
	_, ok := s.selected[key]
	return ok
}

// FocusedKey returns the focused key, if any.
func (s *Selection) FocusedKey() (string, bool) {
	return s.focused, s.focused != ""
}

// SetFocusedKey moves focus to key. Unknown keys are ignored.
func (s *Selection) SetFocusedKey(key string) {
	if _, ok := s.known[key]; !ok || key == s.focused {
		return
	}
	s.focused = key
	s.notify()
}

// IsAllSelected reports whether every item is selected. An empty set is never all selected.
func (s *Selection) IsAllSelected() bool {
	return len(s.keys) > 0 && len(s.selected) == len(s.keys)
}

// ToggleAllSelected selects every item, or clears the selection when all are
// already selected. Only multiple mode supports selecting all.
func (s *Selection) ToggleAllSelected() {
	if s.mode != columns.SelectionMultiple {
		return
	}
	if s.IsAllSelected() {
		clear(s.selected)
	} else {
		for _, k := range s.keys {
			s.selected[k] = struct{}{}
		}
	}
	s.notify()
}

// ToggleKeySelected flips the selection of key. In single mode selecting a key
// deselects the others; in none mode it does nothing.
func (s *Selection) ToggleKeySelected(key string) {
	if s.mode == columns.SelectionNone {
		return
	}
	if _, ok := s.known[key]; !ok {
		return
	}

	if _, ok := s.selected[key]; ok {
		delete(s.selected, key)
	} else {
		if s.mode == columns.SelectionSingle {
			clear(s.selected)
		}
		s.selected[key] = struct{}{}
	}
	s.notify()
}

// SelectedKeys returns the selected keys in item order.
func (s *Selection) SelectedKeys() []string {
	out := make([]string, 0, len(s.selected))
	for _, k := range s.keys {
		if _, ok := s.selected[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// SelectedCount returns the number of selected items.
func (s *Selection) SelectedCount() int {
	return len(s.selected)
}

func (s *Selection) firstSelected() string {
	for _, k := range s.keys {
		if _, ok := s.selected[k]; ok {
			return k
		}
	}
	return ""
}

func (s *Selection) notify() {
	s.changed.Emit(struct{}{})
}
