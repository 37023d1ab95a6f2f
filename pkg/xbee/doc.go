// Package xbee drives an XBee radio module over a byte-oriented transport.
//
// A Device owns one transport and dispatches through a per-variant Ops set
// chosen at construction. The model is single-threaded and poll-driven:
// blocking calls (Connect, Send, Command) are busy-wait loops bounded by
// explicit timeouts, and the embedding application must call Process on
// every iteration of its own loop to make progress on reception outside of
// a blocking call. A Device must not be used from more than one goroutine.
package xbee
