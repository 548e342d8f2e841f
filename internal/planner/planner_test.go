package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/hdrbatch/internal/bracket"
	"github.com/backmassage/hdrbatch/internal/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Interval = 3
	cfg.MaxItems = 20
	cfg.OutputDir = "/out"
	cfg.OutputExt = "exr"
	return &cfg
}

func fixedNow() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

func TestBuildPlan(t *testing.T) {
	p := New(testConfig())
	p.now = fixedNow

	files := []string{"/s/hand.txt", "/s/img_1.jpg", "/s/img_2.jpg", "/s/img_3.jpg", "/s/img_4.jpg", "/s/img_5.jpg", "/s/img_6.jpg", "/s/odd.jpg"}
	res := bracket.Result{
		Sequences: []bracket.Sequence{
			{Files: []string{"/s/odd.jpg", "/s/img_6.jpg"}, Manifest: "/s/hand.txt"},
			{Files: []string{"/s/img_1.jpg", "/s/img_2.jpg", "/s/img_3.jpg"}},
		},
		Duplicates: []string{"/s/img_6.jpg"},
	}

	plan, err := p.BuildPlan("/s", files, res)
	require.NoError(t, err)

	_, err = uuid.Parse(plan.ID)
	assert.NoError(t, err, "plan ID is a UUID")
	assert.Equal(t, fixedNow(), plan.Created)
	assert.Equal(t, "/s", plan.Source)
	assert.Equal(t, 3, plan.Interval)
	assert.Equal(t, 7, plan.Files, "manifests are not counted as files")
	assert.Equal(t, []string{"/s/img_1.jpg:/s/img_6.jpg", "/s/odd.jpg"}, plan.Summary)
	assert.Equal(t, []string{"/s/img_6.jpg"}, plan.Duplicates)
	assert.Equal(t, 1, plan.Manifests())

	require.Len(t, plan.Brackets, 2)
	m := plan.Brackets[0]
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, KindManifest, m.Kind)
	assert.Equal(t, "/s/hand.txt", m.Manifest)
	assert.Equal(t, []string{"/s/odd.jpg", "/s/img_6.jpg"}, m.Inputs, "inputs keep manifest order")
	assert.Equal(t, []string{"/s/img_6.jpg", "/s/odd.jpg"}, m.Display, "display is naturally sorted")
	assert.Equal(t, filepath.Join("/out", "odd_hdr.exr"), m.Output)

	f := plan.Brackets[1]
	assert.Equal(t, 2, f.Index)
	assert.Equal(t, KindInterval, f.Kind)
	assert.Empty(t, f.Manifest)
	assert.Equal(t, []string{"/s/img_1.jpg:/s/img_3.jpg"}, f.Display)
	assert.Equal(t, filepath.Join("/out", "img_1_hdr.exr"), f.Output)
}

func TestBuildPlan_OutputNextToInputs(t *testing.T) {
	cfg := testConfig()
	cfg.OutputDir = ""
	p := New(cfg)

	res := bracket.Result{Sequences: []bracket.Sequence{{Files: []string{"/shoot/a_1.cr2", "/shoot/a_2.cr2"}}}}
	plan, err := p.BuildPlan("/shoot", []string{"/shoot/a_1.cr2", "/shoot/a_2.cr2"}, res)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/shoot", "a_1_hdr.exr"), plan.Brackets[0].Output)
}

func TestBuildPlan_EmptyManifestHasNoOutput(t *testing.T) {
	p := New(testConfig())
	res := bracket.Result{Sequences: []bracket.Sequence{{Files: []string{}, Manifest: "/s/empty.txt"}}}
	plan, err := p.BuildPlan("/s", []string{"/s/empty.txt"}, res)
	require.NoError(t, err)
	assert.Empty(t, plan.Brackets[0].Output)
	assert.Empty(t, plan.Summary)
}

func TestBuildPlan_CollisionsAcrossBatches(t *testing.T) {
	p := New(testConfig())
	seq := bracket.Result{Sequences: []bracket.Sequence{{Files: []string{"img_1.jpg", "img_2.jpg"}}}}

	a, err := p.BuildPlan("/a", nil, seq)
	require.NoError(t, err)
	b, err := p.BuildPlan("/b", nil, seq)
	require.NoError(t, err)
	assert.Equal(t, a.Brackets[0].Output, b.Brackets[0].Output, "BuildPlan leaves collisions alone")

	p.ResolveOutputs(b)
	p.ResolveOutputs(a)
	assert.Equal(t, filepath.Join("/out", "img_1_hdr.exr"), b.Brackets[0].Output, "first resolved keeps the path")
	assert.Equal(t, filepath.Join("/out", "img_1_hdr-2.exr"), a.Brackets[0].Output)

	p.ResolveOutputs(b)
	assert.Equal(t, filepath.Join("/out", "img_1_hdr.exr"), b.Brackets[0].Output, "resolving again is stable")
}

func TestBuildPlan_InvalidMaxItems(t *testing.T) {
	cfg := testConfig()
	cfg.MaxItems = 0
	_, err := New(cfg).BuildPlan("/s", []string{"a.jpg"}, bracket.Result{})
	assert.ErrorIs(t, err, bracket.ErrInvalidArgument)
}

func TestWriteReadPlans(t *testing.T) {
	p := New(testConfig())
	p.now = fixedNow
	res := bracket.Result{Sequences: []bracket.Sequence{{Files: []string{"/s/a_1.jpg", "/s/a_2.jpg", "/s/a_3.jpg"}}}}
	plan, err := p.BuildPlan("/s", res.Sequences[0].Files, res)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "plan.yaml")
	require.NoError(t, WritePlans(path, []*Plan{plan}))

	got, err := ReadPlans(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, plan.Created.Equal(got[0].Created))
	got[0].Created = plan.Created
	assert.Equal(t, plan, got[0])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".plan-", "temp file left behind")
	}
}

func TestWritePlans_ConcurrentWritersNeverInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plan := &Plan{ID: fmt.Sprint(i), Source: fmt.Sprintf("/batch%d", i), Interval: 3}
			assert.NoError(t, WritePlans(path, []*Plan{plan}))
		}(i)
	}
	wg.Wait()

	got, err := ReadPlans(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/batch"+got[0].ID, got[0].Source)
}

func TestReadPlans_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadPlans(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("plans: [\n"), 0o644))
	_, err = ReadPlans(bad)
	assert.Error(t, err)

	future := filepath.Join(dir, "future.yaml")
	require.NoError(t, os.WriteFile(future, []byte("version: 9\nplans: []\n"), 0o644))
	_, err = ReadPlans(future)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestReadPlans_UnlockedWhenLockUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		block func(t *testing.T, path string)
	}{
		{
			name: "lock path is a directory",
			block: func(t *testing.T, path string) {
				require.NoError(t, os.Remove(path+".lock"))
				require.NoError(t, os.Mkdir(path+".lock", 0o755))
			},
		},
		{
			name: "read-only directory without lock file",
			block: func(t *testing.T, path string) {
				dir := filepath.Dir(path)
				require.NoError(t, os.Remove(path+".lock"))
				require.NoError(t, os.Chmod(dir, 0o555))
				t.Cleanup(func() { os.Chmod(dir, 0o755) })
				if f, err := os.Create(filepath.Join(dir, "writable")); err == nil {
					f.Close()
					t.Skip("directory permissions are not enforced for this user")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.yaml")
			plan := &Plan{ID: "p1", Source: "/s", Interval: 3}
			require.NoError(t, WritePlans(path, []*Plan{plan}))
			tt.block(t, path)

			got, err := ReadPlans(path)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "/s", got[0].Source)
		})
	}
}
