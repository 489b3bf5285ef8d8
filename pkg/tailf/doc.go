// Package tailf follows a growing text file and emits every newly appended
// line to its subscribers.
//
// A Session seeds its subscribers with the last N lines of the file, then
// polls the file size on a fixed interval. Growth is read from the last known
// offset; a shrinking file is treated as truncated in place and read again
// from offset 0. Lines that straddle two polls are held back until they are
// terminated. An optional filter decides which lines are emitted, and an
// optional level regex (with a named group "level") keeps a sticky severity
// level attached to each event.
//
// Rotation (rename and recreate) is not followed: the path is stat'ed and
// reopened on every poll, and a recreated file is only noticed when it is
// smaller than the old one.
package tailf
