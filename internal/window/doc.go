// Package window implements a windowed (virtualized) list engine.
//
// The engine partitions an item sequence into fixed-size pages and, for a given
// visible rectangle, decides which pages are materialized (carry their items and
// get rendered) and which are folded into a leading or trailing spacer that only
// reserves height. Heights of rendered pages are fed back through Measure and
// cached by start index, so later passes place pages at their real size and
// estimate unmeasured pages from the running average item height.
//
// A pass is always: Update (structure) -> render materialized pages -> Measure
// (read back heights). The engine never reads measurements while building pages.
package window
