// Package main is the single-binary entrypoint for Soccorso.
package main

import "github.com/soccorso-app/soccorso/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
