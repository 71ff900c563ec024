// Package pipeline assembles and runs the post-install stage plan.
//
// A plan is an ordered list of StageSpecs. Each spec names a stage factory
// in the Registry. Execution is sequential:
//
//   - an identifier missing from the registry is reported and skipped
//   - a stage whose Init fails is reported and halts the whole plan
//   - otherwise the stage's Process runs; its error is recorded only
package pipeline
