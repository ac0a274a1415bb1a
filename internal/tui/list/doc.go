// Package listview renders a windowed list inside a Bubble Tea program.
//
// Only the pages the window engine materializes are rendered: the ones that
// overlap the viewport extended by the overscan. Everything else is
// represented by the two spacer pages, so a render costs O(viewport) no matter
// how many items the list holds. Each relayout runs three phases in order:
//   - structure: the engine rebuilds pages for the visible rectangle
//   - render: the row renderer runs once per materialized item
//   - measure: rendered page heights are fed back into the engine cache
package listview
