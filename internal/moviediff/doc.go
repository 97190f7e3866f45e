// Package moviediff aggregates frame comparisons into a per-movie verdict
// for one pair of builds.
package moviediff
