// Package logs reads the framediffd log file for the CLI.
//
// Last returns the trailing lines of a file with bounded memory, From resumes
// at a byte offset, and Follow polls for appended lines until its context is
// cancelled. Offsets only ever advance past complete lines, so a line that is
// still being written is picked up whole on the next read. A file that shrinks
// below the saved offset is treated as rotated and read from the start.
package logs
