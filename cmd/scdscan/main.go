package main

import (
	"github.com/dc-blueorange/dxc-scd-dse/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
