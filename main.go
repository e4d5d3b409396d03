// Package main is the entry point for the draftmetrics CLI tool, which values
// fantasy football players for Sleeper auction drafts.
package main

import "github.com/pable/go-draft-metrics/cmd"

func main() {
	cmd.Execute()
}
