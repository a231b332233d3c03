// Package extension provides the extension registry at the heart of the
// plugboard plugin architecture.
//
// An extension point is a named slot that plugins contribute ordered items
// to. The Registry holds the current contributions for every extension
// point, hands consumers the flattened, aggregated value, and notifies
// listeners synchronously whenever contributions change.
//
// Concurrency model: a Registry has no internal locking. It is designed for
// a single logical writer (an application event loop); mutation and
// notification happen synchronously and re-entrantly on the caller's
// goroutine. A listener may call back into the registry during dispatch,
// but listeners added during an in-flight dispatch are not guaranteed to
// receive that same event. Hosts that share a Registry across goroutines
// must serialize access themselves.
package extension
