package platform

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveToolchain(t *testing.T) {
	tests := []struct {
		name       string
		key        Key
		version    string
		archive    string
		installDir string
	}{
		{
			name:       "linux x86_64 vendor spelling",
			key:        Key{OS: "linux", Arch: "x86_64"},
			version:    "1.35.0",
			archive:    "ldc-1.35.0-linux-x86_64.tar.xz",
			installDir: "ldc-1.35.0-linux-x86_64",
		},
		{
			name:       "linux amd64 go spelling",
			key:        Key{OS: "linux", Arch: "amd64"},
			version:    "1.35.0",
			archive:    "ldc-1.35.0-linux-x86_64.tar.xz",
			installDir: "ldc-1.35.0-linux-x86_64",
		},
		{
			name:       "darwin arm64 uses osx naming",
			key:        Key{OS: "darwin", Arch: "arm64"},
			version:    "1.35.0",
			archive:    "ldc-1.35.0-osx-arm64.tar.xz",
			installDir: "ldc-1.35.0-osx-arm64",
		},
		{
			name:       "linux aarch64",
			key:        Key{OS: "linux", Arch: "aarch64"},
			version:    "1.36.0",
			archive:    "ldc-1.36.0-linux-aarch64.tar.xz",
			installDir: "ldc-1.36.0-linux-aarch64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := ResolveToolchain(tt.key, tt.version)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.ArchiveName != tt.archive {
				t.Errorf("archive = %q, want %q", desc.ArchiveName, tt.archive)
			}
			if desc.InstallDir != tt.installDir {
				t.Errorf("installDir = %q, want %q", desc.InstallDir, tt.installDir)
			}
			if desc.Version != tt.version {
				t.Errorf("version = %q, want %q", desc.Version, tt.version)
			}
			if !strings.HasSuffix(desc.URL, "/v"+tt.version+"/"+tt.archive) {
				t.Errorf("URL = %q, want suffix /v%s/%s", desc.URL, tt.version, tt.archive)
			}
		})
	}
}

func TestResolveToolchainAllEnumeratedKeys(t *testing.T) {
	for key := range toolchainSuffixes {
		desc, err := ResolveToolchain(key, DefaultToolchainVersion)
		if err != nil {
			t.Fatalf("%s/%s: unexpected error: %v", key.OS, key.Arch, err)
		}
		if desc.ArchiveName == "" || desc.InstallDir == "" || desc.URL == "" {
			t.Errorf("%s/%s: incomplete descriptor: %+v", key.OS, key.Arch, desc)
		}
	}
}

func TestResolveToolchainUnsupported(t *testing.T) {
	tests := []Key{
		{OS: "windows", Arch: "amd64"},
		{OS: "windows", Arch: "arm64"},
		{OS: "linux", Arch: "riscv64"},
		{OS: "plan9", Arch: "amd64"},
		{OS: "", Arch: ""},
	}

	for _, key := range tests {
		t.Run(key.OS+"/"+key.Arch, func(t *testing.T) {
			_, err := ResolveToolchain(key, DefaultToolchainVersion)
			if !errors.Is(err, ErrUnsupportedPlatform) {
				t.Fatalf("err = %v, want ErrUnsupportedPlatform", err)
			}
			if !strings.Contains(err.Error(), key.OS+"/"+key.Arch) {
				t.Errorf("error %q does not name the offending pair", err)
			}
		})
	}
}

func TestResolveAsset(t *testing.T) {
	desc, err := ResolveAsset("bldr", Key{OS: "darwin", Arch: "arm64"}, "2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.ArchiveName != "bldr-darwin-arm64" {
		t.Errorf("asset = %q, want bldr-darwin-arm64", desc.ArchiveName)
	}
	if desc.InstallDir != "bldr-2.0.0" {
		t.Errorf("installDir = %q, want bldr-2.0.0", desc.InstallDir)
	}
	if !strings.HasSuffix(desc.URL, "/v2.0.0/bldr-darwin-arm64") {
		t.Errorf("URL = %q, want version-pinned asset suffix", desc.URL)
	}
}

func TestResolveAssetNormalizesVendorArch(t *testing.T) {
	desc, err := ResolveAsset("bldr", Key{OS: "linux", Arch: "x86_64"}, "2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.ArchiveName != "bldr-linux-amd64" {
		t.Errorf("asset = %q, want bldr-linux-amd64", desc.ArchiveName)
	}
}

func TestResolveAssetUnsupported(t *testing.T) {
	_, err := ResolveAsset("bldr", Key{OS: "windows", Arch: "amd64"}, "2.0.0")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("err = %v, want ErrUnsupportedPlatform", err)
	}
}
