package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/gffstat/internal/config"
	"github.com/inodb/gffstat/internal/gff3"
	"github.com/inodb/gffstat/internal/reportcache"
	"github.com/inodb/gffstat/internal/source"
	"github.com/inodb/gffstat/internal/stats"
)

func runStat(args []string) int {
	settings := config.Load()

	fs := flag.NewFlagSet("stat", flag.ExitOnError)

	var (
		outputFile string
		pretty     bool
		forceGzip  bool
	)

	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.BoolVar(&pretty, "pretty", settings.Pretty, "Pretty-print JSON output (indent 2)")
	fs.BoolVar(&forceGzip, "gzipped", settings.Gzipped, "Force-treat input as gzip-compressed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute structural statistics from a GFF3 annotation file.

Usage:
  gffstat stat [options] <source>

Arguments:
  <source>  Local file path or http(s)/ftp URL, optionally gzip-compressed

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  gffstat stat annotation.gff3
  gffstat stat --pretty -o report.json https://example.org/annotation.gff3.gz
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: source argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	location := fs.Arg(0)

	if strings.HasPrefix(location, "ftp://") && !settings.AllowFTP {
		fmt.Fprintf(os.Stderr, "Error: ftp sources are disabled (source.allow_ftp=false)\n")
		return ExitError
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating logger: %v\n", err)
		return ExitError
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	var cache *reportcache.Store
	fingerprint := reportcache.Fingerprint(location, forceGzip)
	if settings.CachePath != "" {
		cache, err = reportcache.Open(settings.CachePath)
		if err != nil {
			sugar.Warnf("report cache unavailable: %v", err)
			cache = nil
		} else {
			defer cache.Close()
			if payload, found, err := cache.Get(fingerprint); err == nil && found {
				sugar.Infof("serving cached report for %s", location)
				return writeOutput(payload, outputFile)
			}
		}
	}

	sugar.Infof("processing GFF source: %s", location)

	src, err := source.Open(location, forceGzip)
	if err != nil {
		sugar.Errorf("opening source: %v", err)
		return ExitError
	}
	defer src.Close()

	graph := gff3.NewGraph()
	scanner := src.Lines()
	for scanner.Scan() {
		graph.AddLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		sugar.Errorf("reading source: %v", err)
		return ExitError
	}

	if malformed := graph.MalformedRows(); malformed > 0 {
		sugar.Warnf("%d malformed row(s) skipped", malformed)
	}
	if unresolved, samples := graph.Unresolved(); unresolved > 0 {
		sugar.Warnf("%d feature(s) never resolved a parent (e.g. %v)", unresolved, sampleIDs(samples))
	}

	report := stats.BuildReport(graph)
	if report.IsEmpty() {
		sugar.Warnf("%v", stats.ErrEmptyResult)
		return ExitError
	}

	var payload []byte
	if pretty {
		payload, err = json.MarshalIndent(report, "", "  ")
	} else {
		payload, err = json.Marshal(report)
	}
	if err != nil {
		sugar.Errorf("marshaling report: %v", err)
		return ExitError
	}

	if cache != nil {
		if err := cache.Put(fingerprint, location, payload); err != nil {
			sugar.Warnf("caching report: %v", err)
		}
	}

	return writeOutput(payload, outputFile)
}

func writeOutput(payload []byte, outputFile string) int {
	if outputFile == "" {
		payload = append(payload, '\n')
		if _, err := os.Stdout.Write(payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing output: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	}

	if err := os.WriteFile(outputFile, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output file %s: %v\n", outputFile, err)
		return ExitError
	}
	return ExitSuccess
}

func sampleIDs(samples []gff3.Feature) []string {
	ids := make([]string, 0, len(samples))
	for _, f := range samples {
		if f.ID != "" {
			ids = append(ids, f.ID)
		} else {
			ids = append(ids, "<unnamed>")
		}
	}
	return ids
}
