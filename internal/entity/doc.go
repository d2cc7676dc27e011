// Package entity defines the simulated object of the game core.
//
// An [Entity] stores two positions and derives its velocity from their
// difference, so integration is a single Störmer-Verlet update:
//
//	next = 2*current - previous
//
// Absent external changes the last positional delta carries forward
// unchanged; there is no force input and no damping.
//
// Entities own their collision [Shape] list, their behavior hooks and their
// place in a parent/child forest. Lifecycle state (active, queued, destroyed)
// is written only by the lifecycle manager in package world.
//
// # Thread Safety
//
// Entities are not safe for concurrent use. The scheduler drives every
// entity from a single goroutine.
package entity
