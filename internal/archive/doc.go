// Package archive aggregates compiled object files into one static
// archive so the consuming linker sees a single library instead of a
// loose set of objects.
//
// The archive is rebuilt from scratch on every run: any previous archive
// is deleted before ar runs, never incrementally appended to, which
// rules out stale-object link bugs. An empty object directory is a
// visible [ErrNoObjects] failure rather than a silent no-op; a build
// that produced no native objects cannot link.
package archive
