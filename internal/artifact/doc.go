// Package artifact implements the version-keyed local cache shared by
// toolchain bootstrapping and the run-time launcher.
//
// An acquisition follows one shape: if the final install path already
// exists the cache returns it immediately without touching the network;
// otherwise the artifact is downloaded into a private staging directory
// inside the cache root, extracted or installed there, and atomically
// renamed into the version-keyed final path. Staging directories are
// always removed, success or not.
//
// The rename-on-success discipline makes concurrent first-time
// population by independent processes benign: the loser of the race
// observes the winner's tree at the final path and discards its own
// staging directory. Cache entries are never mutated after creation; a
// version bump produces a new path.
//
// Download or extraction failures surface as [ErrAcquisition] with no
// automatic retry.
package artifact
