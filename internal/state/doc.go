// Package state provides the keyed, observable data-source store shared
// between the background poller and the UI.
//
// The poller writes whole sequences with Replace; list components either
// read a point-in-time copy with Source or Subscribe for change
// notification. A single RWMutex guards the maps, and every sequence is
// defensively copied at the boundary: the producer's slice, the stored
// slice and each subscriber's slice are all independent.
//
// Subscriber callbacks fire synchronously on the goroutine that called
// Replace. Consumers that need to hop onto a UI loop (a Bubble Tea
// program, in practice) forward the sequence as a message from inside the
// callback rather than doing UI work there.
package state
