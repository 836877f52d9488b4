package gff3

import (
	"strconv"
	"strings"
)

// skipFeatureTypes are feature rows dropped before attribute parsing.
// Genuine GFF3 "##sequence-region" directives are comments and are
// already skipped by the caller; this set only matches feature-type
// strings in column 3.
var skipFeatureTypes = map[string]bool{
	"region":     true,
	"chromosome": true,
	"scaffold":   true,
}

// LineStatus classifies the outcome of parsing one GFF3 row.
type LineStatus int

const (
	// LineOK means a Feature was produced.
	LineOK LineStatus = iota
	// LineSkip means the row was a comment, blank, too short, in the
	// skip-set, or had an unparsable start/end — silently ignored.
	LineSkip
	// LineMalformed means the row parsed far enough to reach the
	// attributes column but contained an attribute pair with no "=".
	// The row is still skipped, but the caller should count it.
	LineMalformed
)

// ParseLine extracts the seven semantic fields from one GFF3 text line.
// Feature type and biotype are passed through interner so that equal
// strings share one instance across the whole file.
func ParseLine(interner *Interner, line string) (Feature, LineStatus) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '#' {
		return Feature{}, LineSkip
	}

	cols := strings.Split(line, "\t")
	if len(cols) < 9 {
		return Feature{}, LineSkip
	}

	featureType := cols[2]
	if skipFeatureTypes[featureType] {
		return Feature{}, LineSkip
	}

	start, errStart := strconv.Atoi(cols[3])
	end, errEnd := strconv.Atoi(cols[4])
	if errStart != nil || errEnd != nil || start > end {
		return Feature{}, LineSkip
	}

	f := Feature{
		Type:   interner.Intern(featureType),
		Length: int32(end - start + 1),
	}

	malformed := false
	for _, attr := range strings.Split(cols[8], ";") {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		key, value, ok := strings.Cut(attr, "=")
		if !ok {
			malformed = true
			continue
		}
		switch key {
		case "ID":
			f.ID = value
		case "Parent":
			if strings.Contains(value, ",") {
				f.ParentIDs = strings.Split(value, ",")
			} else {
				f.ParentIDs = []string{value}
			}
		case "biotype", "gene_biotype", "transcript_biotype":
			f.Biotype = interner.Intern(value)
		}
	}

	if malformed {
		return Feature{}, LineMalformed
	}
	return f, LineOK
}
