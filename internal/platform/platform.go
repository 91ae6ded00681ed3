package platform

import "fmt"

const (

	// Default pinned toolchain version. Exposed as a default only; the
	// effective version is injected by the caller.
	DefaultToolchainVersion = "1.35.0"

	// Release download host for toolchain archives.
	toolchainReleaseBase = "https://github.com/ldc-developers/ldc/releases/download"

	// Release download host for prebuilt launcher binaries.
	launcherReleaseBase = "https://github.com/bldrhq/bldr/releases/download"
)

// Identifies a target platform for artifact selection.
type Key struct {
	OS   string // Operating system identifier (e.g., "linux", "darwin").
	Arch string // Architecture identifier (e.g., "amd64", "x86_64").
}

// Describes a downloadable, versioned, platform-specific artifact.
//
// A descriptor is derived purely from a platform key and a pinned version
// and is never mutated after creation.
type Descriptor struct {
	Version     string // Pinned artifact version (e.g., "1.35.0").
	ArchiveName string // Archive file name (e.g., "ldc-1.35.0-linux-x86_64.tar.xz").
	InstallDir  string // Directory name the archive extracts to.
	URL         string // Full download URL.
}

// Toolchain archive name suffixes by platform key.
//
// The table enumerates every supported pair. LDC publishes macOS archives
// under the "osx" name, so the install directory differs from the Go OS
// identifier on darwin.
var toolchainSuffixes = map[Key]string{
	{OS: "linux", Arch: "amd64"}:    "linux-x86_64",
	{OS: "linux", Arch: "x86_64"}:   "linux-x86_64",
	{OS: "linux", Arch: "arm64"}:    "linux-aarch64",
	{OS: "linux", Arch: "aarch64"}:  "linux-aarch64",
	{OS: "darwin", Arch: "amd64"}:   "osx-x86_64",
	{OS: "darwin", Arch: "x86_64"}:  "osx-x86_64",
	{OS: "darwin", Arch: "arm64"}:   "osx-arm64",
	{OS: "darwin", Arch: "aarch64"}: "osx-arm64",
}

// Launcher asset platform suffixes by platform key.
//
// Assets are raw executables named <tool>-<os>-<arch> using Go spellings,
// regardless of which spelling the caller supplied.
var assetSuffixes = map[Key]string{
	{OS: "linux", Arch: "amd64"}:    "linux-amd64",
	{OS: "linux", Arch: "x86_64"}:   "linux-amd64",
	{OS: "linux", Arch: "arm64"}:    "linux-arm64",
	{OS: "linux", Arch: "aarch64"}:  "linux-arm64",
	{OS: "darwin", Arch: "amd64"}:   "darwin-amd64",
	{OS: "darwin", Arch: "x86_64"}:  "darwin-amd64",
	{OS: "darwin", Arch: "arm64"}:   "darwin-arm64",
	{OS: "darwin", Arch: "aarch64"}: "darwin-arm64",
}

// Resolves the toolchain archive for a platform and pinned version.
//
// Returns [ErrUnsupportedPlatform] naming the offending pair when the key
// is not in the enumerated table. Windows is deliberately absent: its
// archives use a different format and URL scheme, and auto-installing
// there is not supported.
func ResolveToolchain(key Key, version string) (Descriptor, error) {
	suffix, ok := toolchainSuffixes[key]
	if !ok {
		return Descriptor{}, unsupported(key)
	}

	installDir := fmt.Sprintf("ldc-%s-%s", version, suffix)
	archive := installDir + ".tar.xz"

	return Descriptor{
		Version:     version,
		ArchiveName: archive,
		InstallDir:  installDir,
		URL:         fmt.Sprintf("%s/v%s/%s", toolchainReleaseBase, version, archive),
	}, nil
}

// Resolves the prebuilt launcher binary asset for a platform and version.
//
// The asset is the executable itself, not an archive, so the install
// directory carries the tool name and version while the archive name is
// the published asset name (e.g., "bldr-darwin-arm64").
func ResolveAsset(tool string, key Key, version string) (Descriptor, error) {
	suffix, ok := assetSuffixes[key]
	if !ok {
		return Descriptor{}, unsupported(key)
	}

	asset := tool + "-" + suffix

	return Descriptor{
		Version:     version,
		ArchiveName: asset,
		InstallDir:  fmt.Sprintf("%s-%s", tool, version),
		URL:         fmt.Sprintf("%s/v%s/%s", launcherReleaseBase, version, asset),
	}, nil
}

// Builds the table-miss error carrying the offending pair.
func unsupported(key Key) error {
	return fmt.Errorf("%w: %s/%s (install the toolchain manually)", ErrUnsupportedPlatform, key.OS, key.Arch)
}
