// Package planner turns grouped brackets into the plan handed to the
// HDR-merge step: one entry per bracket with its inputs, a collapsed
// display summary, and a collision-free output path.
//
// Plans are written as YAML under an exclusive file lock so concurrent runs
// targeting the same plan file never interleave.
package planner
