package cli

import (
	"fmt"

	"github.com/bldrhq/bldr/internal"
)

// Shows version information.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run() error {
	fmt.Printf("%s-build %s\n", internal.Name, internal.VersionString())
	return nil
}
