// Package platform maps a target (OS, architecture) pair to the concrete
// downloadable artifacts for that platform.
//
// Resolution is a pure table lookup over an explicitly enumerated key set.
// Both Go spellings (amd64, arm64) and vendor spellings (x86_64, aarch64)
// of the architecture are enumerated; anything else, including the whole
// Windows family, fails with [ErrUnsupportedPlatform] before any network
// or filesystem access is attempted. Callers must treat that as fatal
// rather than falling back to a guessed platform.
package platform
