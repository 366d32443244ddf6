// Package singleton provides a registry that lazily constructs exactly one
// instance of a type and hands out shared references to it.
//
// Lifecycle of the managed instance:
//
//	Uninitialized -> Constructing -> Ready -> Destroyed
//
// The first Get to win the initialization lock moves the registry to
// Constructing; every other caller waits on the lock and, once it is
// released, receives the already published instance. A constructor that
// fails (or panics) moves the registry back to Uninitialized so the next
// call constructs from scratch. Shutdown moves the registry to Destroyed,
// which is terminal. The instance itself is destroyed once the registry's
// own reference and every reference handed out by Get have been released.
//
// The published instance is stored in an atomic pointer, so a caller that
// observes it also observes every write the constructor made.
package singleton
