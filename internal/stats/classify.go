// Package stats classifies genes into reporting categories, aggregates
// per-transcript measurements into per-category, per-transcript-type
// buckets, and builds the final nested length-summary report.
package stats

import (
	"strings"

	"github.com/inodb/gffstat/internal/gff3"
)

// lengthThreshold is the gene-length cutoff separating long_non_coding
// from short_non_coding when a non-coding gene has only a single exon.
const lengthThreshold = 200

// Classify derives a gene's reporting category from its accumulated
// flags, feature type, biotype, and length. Category assignment happens
// once the stream has ended and every transcript under the gene has
// contributed its has_exon/has_cds/has_multiple_exons flags.
func Classify(g *gff3.Gene) gff3.Category {
	switch {
	case g.FeatureType == "pseudogene":
		return gff3.CategoryPseudogene
	case g.HasCDS || strings.Contains(strings.ToLower(g.Biotype), "protein_coding"):
		return gff3.CategoryCoding
	case g.HasExon:
		if g.Length > lengthThreshold || g.HasMultipleExons {
			return gff3.CategoryLongNonCoding
		}
		return gff3.CategoryShortNonCoding
	default:
		return gff3.CategoryNone
	}
}

// ClassifyAll assigns Category on every gene in the graph in place.
func ClassifyAll(g *gff3.Graph) {
	for _, gene := range g.Genes() {
		gene.Category = Classify(gene)
	}
}
