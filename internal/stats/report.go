package stats

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/inodb/gffstat/internal/gff3"
)

// ErrEmptyResult distinguishes a report with all four categories empty
// (no gene was ever classified) from the normal case of some categories
// being empty. BuildReport does not return it; callers that treat an
// empty result as a failure detect it with Report.IsEmpty rather than
// inspecting every category's Count themselves, and report this error.
var ErrEmptyResult = errors.New("empty result: no genes were classified into any category")

// FeatureStats is the count/density/length block reported for exon,
// intron, and CDS measurements within one transcript-type bucket.
type FeatureStats struct {
	Count              int            `json:"count"`
	Density            float64        `json:"density"`
	Length             LengthSummary  `json:"length"`
	LengthConcatenated *LengthSummary `json:"length_concatenated,omitempty"`
}

// FeaturesBlock groups the three feature kinds tracked per transcript
// type. Intron and CDS are omitted entirely when no qualifying
// transcript exists.
type FeaturesBlock struct {
	Exon   FeatureStats  `json:"exon"`
	Intron *FeatureStats `json:"intron,omitempty"`
	CDS    *FeatureStats `json:"cds,omitempty"`
}

// TranscriptTypeStats is the per-(category, transcript type) entry of
// the report.
type TranscriptTypeStats struct {
	Count    int           `json:"count"`
	Density  float64       `json:"density"`
	Length   LengthSummary `json:"length"`
	Features FeaturesBlock `json:"features"`
}

// TranscriptsMap preserves first-encounter insertion order of
// transcript-type keys across JSON marshaling, since a plain Go map
// would otherwise serialize keys sorted alphabetically.
type TranscriptsMap struct {
	order   []string
	entries map[string]TranscriptTypeStats
}

func newTranscriptsMap() *TranscriptsMap {
	return &TranscriptsMap{entries: make(map[string]TranscriptTypeStats)}
}

func (m *TranscriptsMap) set(key string, v TranscriptTypeStats) {
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = v
}

// MarshalJSON writes the map's entries as a JSON object in insertion
// order rather than Go's default map-key sort order.
func (m *TranscriptsMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CategoryReport is one of the four top-level report values. A category
// with no genes marshals as an empty JSON object, matching the
// convention that empty categories yield {}.
type CategoryReport struct {
	Count       int             `json:"count"`
	Length      LengthSummary   `json:"length"`
	Transcripts *TranscriptsMap `json:"transcripts"`
}

// MarshalJSON emits {} for an empty category instead of a populated-but-
// zeroed object.
func (c CategoryReport) MarshalJSON() ([]byte, error) {
	if c.Count == 0 {
		return []byte("{}"), nil
	}
	type alias CategoryReport
	return json.Marshal(alias(c))
}

// Report is the complete structured output: four gene categories keyed
// exactly as coding_genes, long_non_coding_genes, short_non_coding_genes,
// and pseudogenes.
type Report struct {
	CodingGenes         CategoryReport `json:"coding_genes"`
	LongNonCodingGenes  CategoryReport `json:"long_non_coding_genes"`
	ShortNonCodingGenes CategoryReport `json:"short_non_coding_genes"`
	Pseudogenes         CategoryReport `json:"pseudogenes"`
}

// BuildReport classifies every gene in g, aggregates every transcript,
// and produces the final report. It is the sole entry point into the
// stats package for a finished graph.
func BuildReport(g *gff3.Graph) Report {
	ClassifyAll(g)
	buckets := aggregate(g)

	return Report{
		CodingGenes:         buildCategory(g, gff3.CategoryCoding, buckets),
		LongNonCodingGenes:  buildCategory(g, gff3.CategoryLongNonCoding, buckets),
		ShortNonCodingGenes: buildCategory(g, gff3.CategoryShortNonCoding, buckets),
		Pseudogenes:         buildCategory(g, gff3.CategoryPseudogene, buckets),
	}
}

// IsEmpty reports whether every one of the four categories has zero
// genes — distinguishable from, and treated as a failure alongside, an
// ordinary empty category.
func (r Report) IsEmpty() bool {
	return r.CodingGenes.Count == 0 &&
		r.LongNonCodingGenes.Count == 0 &&
		r.ShortNonCodingGenes.Count == 0 &&
		r.Pseudogenes.Count == 0
}

func buildCategory(g *gff3.Graph, cat gff3.Category, all map[gff3.Category]*categoryBuckets) CategoryReport {
	var geneLengths []int64
	for _, gene := range g.Genes() {
		if gene.Category == cat {
			geneLengths = append(geneLengths, int64(gene.Length))
		}
	}
	if len(geneLengths) == 0 {
		return CategoryReport{}
	}

	transcripts := newTranscriptsMap()
	if cb, ok := all[cat]; ok {
		for _, ttype := range cb.order {
			transcripts.set(ttype, buildTranscriptType(cb.byType[ttype]))
		}
	}

	return CategoryReport{
		Count:       len(geneLengths),
		Length:      Summarize(geneLengths),
		Transcripts: transcripts,
	}
}

func buildTranscriptType(b *bucket) TranscriptTypeStats {
	density := 0.0
	if len(b.geneIDs) > 0 {
		density = round2(float64(b.transcriptCount) / float64(len(b.geneIDs)))
	}

	features := FeaturesBlock{
		Exon: FeatureStats{
			Count:              int(b.exonCountSum),
			Density:            densityOf(b.exonCountSum, b.transcriptCount),
			Length:             Summarize(b.exonLens),
			LengthConcatenated: summaryPtr(b.splicedLens),
		},
	}
	if len(b.intronLens) > 0 {
		features.Intron = &FeatureStats{
			Count:   len(b.intronLens),
			Density: densityOf(int64(len(b.intronLens)), b.transcriptCount),
			Length:  Summarize(b.intronLens),
		}
	}
	if b.cdsCountSum > 0 {
		features.CDS = &FeatureStats{
			Count:              int(b.cdsCountSum),
			Density:            densityOf(b.cdsCountSum, b.transcriptCount),
			Length:             Summarize(b.cdsLens),
			LengthConcatenated: summaryPtr(b.proteinLens),
		}
	}

	return TranscriptTypeStats{
		Count:    b.transcriptCount,
		Density:  density,
		Length:   Summarize(b.lengths),
		Features: features,
	}
}

func densityOf(count int64, transcriptCount int) float64 {
	if transcriptCount == 0 {
		return 0
	}
	return round2(float64(count) / float64(transcriptCount))
}

func summaryPtr(lengths []int64) *LengthSummary {
	s := Summarize(lengths)
	return &s
}
