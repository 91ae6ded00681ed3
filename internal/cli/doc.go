// Parses flags and configures logging for the bldr-build orchestrator.
//
// The orchestrator accepts the following flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level before the
// selected subcommand runs. Link directives go to stdout; all logging
// goes to stderr so the consuming build graph never parses log lines as
// directives.
package cli
