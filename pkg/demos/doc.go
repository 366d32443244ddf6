// Package demos holds the library tour. Each demo registers itself from an
// init function; Run executes them in tour order against an Env.
package demos
