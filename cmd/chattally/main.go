// chattally - per-sender search term tallies for chat exports
//
// chattally scans line-oriented chat exports, attributes each message line
// to its sender, and counts or locates occurrences of search phrases.
package main

import (
	"os"

	"github.com/ccollicutt/chattally/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
