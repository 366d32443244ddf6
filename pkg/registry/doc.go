// Package registry provides a generic, thread-safe name registry. Demos
// register themselves into one from init() functions.
package registry
