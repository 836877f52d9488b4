package reportcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s)
}

func TestPutAndGet(t *testing.T) {
	s := openInMemory(t)

	fp := Fingerprint("annotation.gff3", false)
	require.NoError(t, s.Put(fp, "annotation.gff3", []byte(`{"coding_genes":{}}`)))

	payload, found, err := s.Get(fp)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"coding_genes":{}}`, string(payload))
}

func TestGetMissing(t *testing.T) {
	s := openInMemory(t)

	_, found, err := s.Get("does-not-exist")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutOverwritesExistingFingerprint(t *testing.T) {
	s := openInMemory(t)

	fp := Fingerprint("annotation.gff3", false)
	require.NoError(t, s.Put(fp, "annotation.gff3", []byte(`{"v":1}`)))
	require.NoError(t, s.Put(fp, "annotation.gff3", []byte(`{"v":2}`)))

	payload, found, err := s.Get(fp)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"v":2}`, string(payload))
}

func TestFingerprint_DiffersOnGzipFlag(t *testing.T) {
	a := Fingerprint("annotation.gff3", false)
	b := Fingerprint("annotation.gff3", true)
	assert.NotEqual(t, a, b)
}
