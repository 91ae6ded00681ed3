package linkspec

import (
	"fmt"
	"io"
)

// Kind of a link directive.
type Kind int

const (
	SearchPath Kind = iota // Native library search path.
	StaticLib              // Statically linked library name.
	DynamicLib             // Dynamically linked library name.
)

// One instruction for the consuming linker.
type Directive struct {
	Kind  Kind   // What the value means.
	Value string // Search path or library name, without prefixes.
}

// Renders the directive in cargo build-script format.
func (d Directive) String() string {
	switch d.Kind {
	case SearchPath:
		return "cargo:rustc-link-search=native=" + d.Value
	case StaticLib:
		return "cargo:rustc-link-lib=static=" + d.Value
	default:
		return "cargo:rustc-link-lib=" + d.Value
	}
}

// Ordered sequence of link directives plus rerun triggers.
//
// Directives are emitted in insertion order; the zero value is ready to
// use.
type Set struct {
	directives []Directive
	reruns     []string
}

// Appends a native library search path.
func (s *Set) AddSearchPath(path string) {
	s.directives = append(s.directives, Directive{Kind: SearchPath, Value: path})
}

// Appends a statically linked library.
func (s *Set) AddStaticLib(name string) {
	s.directives = append(s.directives, Directive{Kind: StaticLib, Value: name})
}

// Appends a dynamically linked library.
func (s *Set) AddDynamicLib(name string) {
	s.directives = append(s.directives, Directive{Kind: DynamicLib, Value: name})
}

// Appends a watched source location that should trigger a rebuild.
func (s *Set) AddRerunTrigger(path string) {
	s.reruns = append(s.reruns, path)
}

// Returns the directives in emission order.
func (s *Set) Directives() []Directive {
	return s.directives
}

// Writes the full directive sequence followed by the rerun triggers.
func (s *Set) Emit(w io.Writer) error {
	for _, d := range s.directives {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	for _, path := range s.reruns {
		if _, err := fmt.Fprintln(w, "cargo:rerun-if-changed="+path); err != nil {
			return err
		}
	}
	return nil
}
