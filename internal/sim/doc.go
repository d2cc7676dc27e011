// Package sim runs the simulation loop.
//
// A [Scheduler] turns wall-clock frame time into whole fixed physics ticks
// plus a fractional remainder. Each frame it:
//
//  1. drains the world's destroy queue,
//  2. clamps the frame delta to Config.MaxDelta,
//  3. runs one integration + collision pass per whole fixed step,
//  4. pushes interpolated positions to render handles,
//  5. runs every entity's update hooks with the frame delta.
//
// Destruction always precedes physics, so an entity destroyed during a frame
// never takes part in the next frame's integration or collision tests.
//
// # Thread Safety
//
// A Scheduler is not safe for concurrent use. Independent schedulers share
// nothing and may run on separate goroutines.
package sim
