// Package talks defines the talk data model, the source abstraction for
// fetching the talk collection, and the reactive store that owns the
// collection, its loading state, and the filtered view over it.
package talks
