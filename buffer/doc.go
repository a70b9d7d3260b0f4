// Package buffer implements a small in-memory editable document.
//
// Offsets are 0-based character (rune) offsets. Ranges are half-open:
// [Start, End). Every effective mutation is recorded as a versioned Change
// and published to subscribers, which is how a Buffer acts as an editable
// text source for the tracker.
package buffer
