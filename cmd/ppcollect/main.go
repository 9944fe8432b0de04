// Package main provides the ppcollect CLI application.
// ppcollect combines power plant registries into one dataset.
package main

import "github.com/gnames/ppcollect/cmd"

func main() {
	cmd.Execute()
}
