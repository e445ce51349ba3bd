// Package ui renders command lifecycle events in a human-readable form when
// console logging is selected.
package ui
