// Package collision detects and resolves overlaps between entity shapes.
//
// Shapes are grouped by layer in an [Index]. A [Detector] holds an ordered
// list of [Rule] values, each naming two layers, and on every physics tick
// tests every shape of the first layer against every shape of the second.
// There is no broad phase: a rule costs O(|A|*|B|), which is fine for the
// small entity counts this core targets.
//
// Overlaps between two physics shapes are separated along the axis of least
// penetration, half the depth each. Trigger shapes (Physics == false) are
// reported but never moved.
package collision
