// Package archive exposes a read-only typed view over a screenshot archive
// laid out as <root>/<target>/<build>/<movie>-<frame>.<ext>.
//
// Builds order lexicographically by name; the newest build sorts last. Frame
// files are grouped into movies by the filename grammar implemented in
// ParseFrameName. Directories that are missing, or that vanish while a scan is
// running, read as empty rather than failing the caller.
package archive
