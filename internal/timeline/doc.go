// Package timeline classifies every (movie, build) pair of a target.
//
// For a fixed movie the builds are walked newest to oldest and each one is
// given a Verdict. When the immediately older build lacks the movie, the
// reconciler reaches back to the nearest older build that still has it and
// records that build as the Reference, so a gap in the history never reads
// as "no data".
//
// Verdicts are decided in priority order:
//
//  1. first-seen: the oldest build containing the movie.
//  2. unknown: the oldest build of the target when rule 1 did not apply.
//  3. missing: the movie is absent; Reference is the nearest older build
//     that has it, or NoReference is set.
//  4. re-added: present here, absent from the predecessor; Reference as in 3.
//  5. partial-changed or unchanged: present in both but the frame sets
//     differ; partial-changed only if a common frame differs in pixels.
//  6. changed or unchanged: identical frame sets; the movie diff decides.
package timeline
