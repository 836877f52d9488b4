package gff3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine_Basic(t *testing.T) {
	in := NewInterner()

	tests := []struct {
		name       string
		line       string
		wantStatus LineStatus
		wantFeat   Feature
	}{
		{
			name:       "gene row has no parent",
			line:       "1\tensembl\tgene\t1000\t2000\t.\t+\t.\tID=g1;biotype=protein_coding",
			wantStatus: LineOK,
			wantFeat:   Feature{ID: "g1", Type: "gene", Length: 1001, Biotype: "protein_coding"},
		},
		{
			name:       "transcript row has single parent",
			line:       "1\tensembl\tmRNA\t1000\t2000\t.\t+\t.\tID=t1;Parent=g1",
			wantStatus: LineOK,
			wantFeat:   Feature{ID: "t1", Type: "mRNA", Length: 1001, ParentIDs: []string{"g1"}},
		},
		{
			name:       "leaf row may list multiple parents",
			line:       "1\tensembl\texon\t1000\t1200\t.\t+\t.\tID=e1;Parent=t1,t2",
			wantStatus: LineOK,
			wantFeat:   Feature{ID: "e1", Type: "exon", Length: 201, ParentIDs: []string{"t1", "t2"}},
		},
		{
			name:       "comment line is skipped",
			line:       "##gff-version 3",
			wantStatus: LineSkip,
		},
		{
			name:       "blank line is skipped",
			line:       "",
			wantStatus: LineSkip,
		},
		{
			name:       "too few columns is skipped",
			line:       "1\tensembl\tgene\t1000\t2000",
			wantStatus: LineSkip,
		},
		{
			name:       "region feature type is skipped",
			line:       "1\tensembl\tregion\t1\t1000000\t.\t.\t.\tID=chr1",
			wantStatus: LineSkip,
		},
		{
			name:       "unparsable start is skipped",
			line:       "1\tensembl\tgene\tNaN\t2000\t.\t+\t.\tID=g1",
			wantStatus: LineSkip,
		},
		{
			name:       "start after end is skipped",
			line:       "1\tensembl\tgene\t2000\t1000\t.\t+\t.\tID=g1",
			wantStatus: LineSkip,
		},
		{
			name:       "attribute with no equals is malformed",
			line:       "1\tensembl\tgene\t1000\t2000\t.\t+\t.\tID=g1;orphanflag",
			wantStatus: LineMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, status := ParseLine(in, tt.line)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == LineOK {
				assert.Equal(t, tt.wantFeat.ID, f.ID)
				assert.Equal(t, tt.wantFeat.Type, f.Type)
				assert.Equal(t, tt.wantFeat.Length, f.Length)
				assert.Equal(t, tt.wantFeat.ParentIDs, f.ParentIDs)
				assert.Equal(t, tt.wantFeat.Biotype, f.Biotype)
			}
		})
	}
}

func TestParseLine_BiotypeAliases(t *testing.T) {
	in := NewInterner()

	tests := []string{"biotype", "gene_biotype", "transcript_biotype"}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			f, status := ParseLine(in, "1\tensembl\tgene\t1\t100\t.\t+\t.\tID=g1;"+key+"=lncRNA")
			assert.Equal(t, LineOK, status)
			assert.Equal(t, "lncRNA", f.Biotype)
		})
	}
}

func TestParseLine_Interning(t *testing.T) {
	in := NewInterner()

	f1, _ := ParseLine(in, "1\tensembl\texon\t1\t100\t.\t+\t.\tParent=t1")
	f2, _ := ParseLine(in, "1\tensembl\texon\t200\t300\t.\t+\t.\tParent=t1")

	assert.Equal(t, f1.Type, f2.Type)
}
