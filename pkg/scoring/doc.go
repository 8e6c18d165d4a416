// Package scoring implements the risk scoring pipeline: source aggregation,
// expert-panel analysis, tri-band prioritization and post-mitigation comparison.
//
// Every function in this package is pure. Inputs are never mutated and no state
// is kept between calls, so the functions are safe for concurrent use.
package scoring
