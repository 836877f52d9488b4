// Package main provides the gffstat command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inodb/gffstat/internal/config"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("gffstat version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return ExitError
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "stat":
		return runStat(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func runConfig(args []string) int {
	cmd := newConfigCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `gffstat - GFF3 structural statistics

Usage:
  gffstat [options] <command> [arguments]

Commands:
  stat        Compute structural statistics from a GFF3 file
  config      Show or edit persisted CLI defaults
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  gffstat stat annotation.gff3
  gffstat stat --pretty -o report.json https://example.org/annotation.gff3.gz
  gffstat config set source.allow_ftp false

For more information on a command, use:
  gffstat <command> --help
`)
}
