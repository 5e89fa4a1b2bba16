package main

import (
	"os"

	"github.com/lithictech/go-assay/cmd/assay/cmd"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
