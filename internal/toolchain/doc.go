// Package toolchain guarantees the D build tools are available.
//
// Tools already on the ambient search path are preferred: each one is
// verified with a --version probe before being trusted. Only when a
// required tool is missing is the pinned toolchain acquired through the
// artifact cache, after which executables are resolved under the
// installed tree's bin directory. In that case an extra search-path
// entry is recorded so that the secondary build step can discover
// sibling tools installed alongside the compiler, and the tree's lib
// directory is recorded for the link step.
package toolchain
