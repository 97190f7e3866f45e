// Package imagediff compares frame images pixel by pixel.
//
// A Differ memoizes results for the pair of paths it was asked about and is
// meant to live for exactly one query. Comparison is exact: two images are
// different when any channel of any pixel differs. Images that cannot be
// read or decoded are reported as different together with ErrUnreadable, so
// a broken frame is never mistaken for an unchanged one.
package imagediff
