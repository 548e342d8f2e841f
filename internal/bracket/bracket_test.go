package bracket

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest writes a manifest into dir and returns its path.
func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func files(seqs []Sequence) [][]string {
	out := make([][]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.Files
	}
	return out
}

// --- GroupFixed ---

func TestGroupFixed(t *testing.T) {
	in := []string{"a1", "a2", "a3", "b1", "b2", "b3"}
	seqs, err := GroupFixed(in, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a1", "a2", "a3"}, {"b1", "b2", "b3"}}, files(seqs))
	for _, s := range seqs {
		assert.False(t, s.FromManifest())
	}
}

func TestGroupFixed_SizeOne(t *testing.T) {
	seqs, err := GroupFixed([]string{"x", "y"}, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}, {"y"}}, files(seqs))
}

func TestGroupFixed_Mismatch(t *testing.T) {
	_, err := GroupFixed([]string{"1", "2", "3", "4", "5"}, 3)
	var mismatch *BracketSizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Expected)
	assert.Equal(t, 5, mismatch.Actual)
	assert.Contains(t, err.Error(), "multiple of 3, got 5")
}

func TestGroupFixed_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -2} {
		_, err := GroupFixed([]string{"a"}, size)
		require.ErrorIs(t, err, ErrInvalidArgument)
		var inv *InvalidArgumentError
		require.ErrorAs(t, err, &inv)
		assert.Equal(t, size, inv.Value)
	}
}

func TestGroupFixed_Empty(t *testing.T) {
	seqs, err := GroupFixed(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, seqs)
}

func TestGroupFixed_ChunksAreCopies(t *testing.T) {
	in := []string{"a", "b"}
	seqs, err := GroupFixed(in, 2)
	require.NoError(t, err)
	in[0] = "changed"
	assert.Equal(t, "a", seqs[0].Files[0])
}

// --- ReadManifest ---

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"single line", "a.jpg,b.jpg,c.jpg", []string{"a.jpg", "b.jpg", "c.jpg"}},
		{"trailing newline", "a.jpg,b.jpg\n", []string{"a.jpg", "b.jpg"}},
		{"spaces trimmed", " a.jpg , b.jpg ", []string{"a.jpg", "b.jpg"}},
		{"empty entries dropped", "a.jpg,,b.jpg,", []string{"a.jpg", "b.jpg"}},
		{"crlf lines", "a.jpg,b.jpg\r\nc.jpg", []string{"a.jpg", "b.jpg", "c.jpg"}},
		{"empty file", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeManifest(t, dir, "m.txt", tt.content)
			got, err := ReadManifest(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadManifest_Missing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.txt")
	_, err := ReadManifest(p)
	var mre *ManifestReadError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, p, mre.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// --- GroupByManifest ---

func TestSplitManifests(t *testing.T) {
	manifests, images := SplitManifests([]string{"a.jpg", "set1.TXT", "b.jpg", "set2.txt"})
	assert.Equal(t, []string{"set1.TXT", "set2.txt"}, manifests)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, images)
}

func TestGroupByManifest(t *testing.T) {
	dir := t.TempDir()
	m1 := writeManifest(t, dir, "one.txt", "/s/a.jpg,/s/b.jpg,/s/c.jpg")
	m2 := writeManifest(t, dir, "two.TXT", "/s/x.jpg,/s/y.jpg")

	in := []string{"/s/a.jpg", m1, "/s/x.jpg", "/s/d.jpg", "/s/b.jpg", m2, "/s/c.jpg", "/s/y.jpg", "/s/e.jpg"}
	res, err := GroupByManifest(in, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"/s/a.jpg", "/s/b.jpg", "/s/c.jpg"}, {"/s/x.jpg", "/s/y.jpg"}}, files(res.Sequences))
	assert.Equal(t, m1, res.Sequences[0].Manifest)
	assert.Equal(t, m2, res.Sequences[1].Manifest)
	assert.Equal(t, []string{"/s/d.jpg", "/s/e.jpg"}, res.Remaining)
	assert.Empty(t, res.Duplicates)
}

func TestGroupByManifest_ClaimsAbsentFromPool(t *testing.T) {
	dir := t.TempDir()
	m := writeManifest(t, dir, "one.txt", "elsewhere_1.jpg,elsewhere_2.jpg")

	res, err := GroupByManifest([]string{m, "a.jpg"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"elsewhere_1.jpg", "elsewhere_2.jpg"}}, files(res.Sequences))
	assert.Equal(t, []string{"a.jpg"}, res.Remaining)
}

func TestGroupByManifest_Duplicates(t *testing.T) {
	dir := t.TempDir()
	m1 := writeManifest(t, dir, "one.txt", "a.jpg,b.jpg")
	m2 := writeManifest(t, dir, "two.txt", "b.jpg,c.jpg")

	res, err := GroupByManifest([]string{m1, m2, "a.jpg", "b.jpg", "c.jpg", "d.jpg"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg"}, res.Duplicates)
	assert.Equal(t, []string{"d.jpg"}, res.Remaining)
	assert.Len(t, res.Sequences, 2)
}

func TestGroupByManifest_RepeatedPathsCountOnce(t *testing.T) {
	dir := t.TempDir()
	m := writeManifest(t, dir, "one.txt", "x.jpg")

	res, err := GroupByManifest([]string{"a.jpg", m, "a.jpg", "b.jpg", m, "x.jpg", "x.jpg"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, res.Remaining)
	assert.Equal(t, [][]string{{"x.jpg"}}, files(res.Sequences))
	assert.Empty(t, res.Duplicates)
}

func TestGroup_RepeatedImageNotBracketedTwice(t *testing.T) {
	_, err := Group([]string{"a.jpg", "a.jpg", "b.jpg"}, 3, Options{})
	var mismatch *BracketSizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Actual)

	res, err := Group([]string{"a.jpg", "a.jpg", "b.jpg"}, 2, Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a.jpg", "b.jpg"}}, files(res.Sequences))
}

func TestGroupByManifest_StrictRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	m1 := writeManifest(t, dir, "one.txt", "a.jpg,b.jpg")
	m2 := writeManifest(t, dir, "two.txt", "b.jpg")

	_, err := GroupByManifest([]string{m1, m2}, Options{StrictManifests: true})
	var dup *DuplicateMemberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "b.jpg", dup.Path)
	assert.Equal(t, []string{m1, m2}, dup.Manifests)
}

func TestGroupByManifest_UnreadableManifest(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.txt", "a.jpg")
	bad := filepath.Join(dir, "bad.txt")

	res, err := GroupByManifest([]string{good, bad, "a.jpg"}, Options{})
	var mre *ManifestReadError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, bad, mre.Path)
	assert.Empty(t, res.Sequences)
}

// --- Group ---

func TestGroup_ManifestThenFixed(t *testing.T) {
	dir := t.TempDir()
	m := writeManifest(t, dir, "hand.txt", "p_1.jpg,p_2.jpg")

	in := []string{"f_1.jpg", "p_1.jpg", "f_2.jpg", m, "p_2.jpg", "f_3.jpg", "f_4.jpg"}
	res, err := Group(in, 2, Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"p_1.jpg", "p_2.jpg"},
		{"f_1.jpg", "f_2.jpg"},
		{"f_3.jpg", "f_4.jpg"},
	}, files(res.Sequences))
	assert.True(t, res.Sequences[0].FromManifest())
	assert.False(t, res.Sequences[1].FromManifest())
}

func TestGroup_Empty(t *testing.T) {
	res, err := Group(nil, 3, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Sequences)

	res, err = Group([]string{}, 0, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Sequences)
}

func TestGroup_InvalidInterval(t *testing.T) {
	_, err := Group([]string{"a.jpg"}, 0, Options{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGroup_MismatchAfterClaims(t *testing.T) {
	dir := t.TempDir()
	m := writeManifest(t, dir, "hand.txt", "a.jpg")

	res, err := Group([]string{m, "a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"}, 3, Options{})
	var mismatch *BracketSizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, BracketSizeMismatchError{Expected: 3, Actual: 5}, *mismatch)
	assert.Empty(t, res.Sequences, "no partial result on failure")
}

func TestGroup_PartitionsInputExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	m1 := writeManifest(t, dir, "m1.txt", "img_01.jpg,img_02.jpg,img_03.jpg")
	m2 := writeManifest(t, dir, "m2.txt", "img_10.jpg,img_11.jpg,img_12.jpg")

	var images []string
	for _, n := range []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"} {
		images = append(images, "img_"+n+".jpg")
	}
	in := append([]string{m1, m2}, images...)

	res, err := Group(in, 3, Options{})
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, s := range res.Sequences {
		for _, f := range s.Files {
			seen[f]++
		}
	}
	assert.Len(t, seen, len(images))
	for _, img := range images {
		assert.Equal(t, 1, seen[img], "file %s", img)
	}
	assert.Len(t, res.Sequences, 4)
}

func TestErrorMessages(t *testing.T) {
	err := &ManifestReadError{Path: "m.txt", Err: errors.New("boom")}
	assert.Equal(t, `read manifest "m.txt": boom`, err.Error())

	inv := &InvalidArgumentError{Name: "interval", Value: 0}
	assert.Equal(t, "interval must be a positive integer (got 0)", inv.Error())
}
