// Package registry provides a generic, thread-safe name-to-value table.
// The pipeline keeps its stage factories in one, keyed by stage identifier.
package registry
