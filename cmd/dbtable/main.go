// Command dbtable prints database tables, their metadata or their data as
// console tables.
package main

import (
	"os"

	"dbtable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
