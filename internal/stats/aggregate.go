package stats

import "github.com/inodb/gffstat/internal/gff3"

// bucket accumulates every transcript measurement for one
// (category, transcript.type) pair.
type bucket struct {
	geneIDs map[string]struct{}

	transcriptCount int
	lengths         []int64

	exonLens     []int64
	splicedLens  []int64
	exonCountSum int64

	intronLens []int64

	cdsLens     []int64
	proteinLens []int64
	cdsCountSum int64
}

func newBucket() *bucket {
	return &bucket{geneIDs: make(map[string]struct{})}
}

func (b *bucket) addGene(id string) {
	if id != "" {
		b.geneIDs[id] = struct{}{}
	}
}

// categoryBuckets holds the ordered set of transcript-type buckets for
// one gene category. Insertion order reflects the order in which each
// type was first encountered while walking transcripts, matching the
// report's required key ordering.
type categoryBuckets struct {
	order  []string
	byType map[string]*bucket
}

func newCategoryBuckets() *categoryBuckets {
	return &categoryBuckets{byType: make(map[string]*bucket)}
}

func (c *categoryBuckets) bucketFor(ttype string) *bucket {
	b, ok := c.byType[ttype]
	if !ok {
		b = newBucket()
		c.byType[ttype] = b
		c.order = append(c.order, ttype)
	}
	return b
}

// aggregate walks every transcript in the graph once, bucketing its
// measurements by (category, transcript.type). Genes are assumed
// already classified (see ClassifyAll).
func aggregate(g *gff3.Graph) map[gff3.Category]*categoryBuckets {
	genes := g.Genes()
	out := make(map[gff3.Category]*categoryBuckets)

	for _, t := range g.TranscriptsInOrder() {
		gene, ok := genes[t.GeneID]
		if !ok || gene.Category == gff3.CategoryNone {
			continue
		}

		cb, ok := out[gene.Category]
		if !ok {
			cb = newCategoryBuckets()
			out[gene.Category] = cb
		}
		b := cb.bucketFor(t.Type)

		b.addGene(t.GeneID)
		b.transcriptCount++
		b.lengths = append(b.lengths, int64(t.Length))

		for _, el := range t.ExonsLengths {
			b.exonLens = append(b.exonLens, int64(el))
		}
		b.splicedLens = append(b.splicedLens, t.ExonLenSum)
		b.exonCountSum += int64(t.ExonCount)

		if t.CDSCount > 0 {
			for _, cl := range t.CDSLengths {
				b.cdsLens = append(b.cdsLens, int64(cl))
			}
			b.cdsCountSum += int64(t.CDSCount)
			b.proteinLens = append(b.proteinLens, t.CDSLenSum/3)
		}

		if t.ExonCount > 1 {
			b.intronLens = append(b.intronLens, int64(t.Length)-t.ExonLenSum)
		}
	}

	return out
}
