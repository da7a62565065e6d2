package recovery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoveryPath(t *testing.T) {
	src := filepath.FromSlash("/data/src")
	rec := filepath.FromSlash("/data/rec")
	m := NewMapper(src, rec)

	for _, test := range []struct {
		source string
		want   string
	}{
		{"/data/src/a.txt", "/data/rec/a.txt.par2"},
		{"/data/src/dir/b.jpg", "/data/rec/dir/b.jpg.par2"},
		{"/data/src/dir/sub/c", "/data/rec/dir/sub/c.par2"},
		{"/data/src/x.vol0+1", "/data/rec/x.vol0+1.par2"},
	} {
		got := m.RecoveryPath(filepath.FromSlash(test.source))
		assert.Equal(t, filepath.FromSlash(test.want), got, test.source)
	}
}

func TestRecoveryPathTrailingSeparatorRoots(t *testing.T) {
	m := NewMapper(filepath.FromSlash("/data/src/"), filepath.FromSlash("/data/rec/"))
	assert.Equal(t, filepath.FromSlash("/data/rec/a.par2"), m.RecoveryPath(filepath.FromSlash("/data/src/a")))
}

func TestRecoveryPathOutsideRootPanics(t *testing.T) {
	m := NewMapper(filepath.FromSlash("/data/src"), filepath.FromSlash("/data/rec"))

	assert.Panics(t, func() { m.RecoveryPath(filepath.FromSlash("/data/other/a.txt")) })
	// a sibling sharing the prefix is not a descendant
	assert.Panics(t, func() { m.RecoveryPath(filepath.FromSlash("/data/srcx/a.txt")) })
	assert.Panics(t, func() { m.RecoveryPath(filepath.FromSlash("/data/src")) })
}

func TestSourcePath(t *testing.T) {
	m := NewMapper(filepath.FromSlash("/data/src"), filepath.FromSlash("/data/rec"))

	assert.Equal(t, filepath.FromSlash("/data/src/a.txt"), m.SourcePath(filepath.FromSlash("/data/rec/a.txt.par2")))
	assert.Equal(t, filepath.FromSlash("/data/src/d/e.par2"), m.SourcePath(filepath.FromSlash("/data/rec/d/e.par2.par2")))

	assert.Panics(t, func() { m.SourcePath(filepath.FromSlash("/data/rec/a.txt")) })
	assert.Panics(t, func() { m.SourcePath(filepath.FromSlash("/data/src/a.txt.par2")) })
}

func TestRoundTrip(t *testing.T) {
	m := NewMapper(filepath.FromSlash("/s"), filepath.FromSlash("/r/nested"))
	for _, p := range []string{
		"/s/a",
		"/s/a.par2",
		"/s/with space/file name.txt",
		"/s/deep/er/still/x.tar.gz",
		"/s/.hidden",
	} {
		p = filepath.FromSlash(p)
		assert.Equal(t, p, m.SourcePath(m.RecoveryPath(p)))
	}
}

func TestLink(t *testing.T) {
	m := NewMapper(filepath.FromSlash("/s"), filepath.FromSlash("/r"))
	assert.Equal(t, Link{
		Source:   filepath.FromSlash("/s/a.txt"),
		Recovery: filepath.FromSlash("/r/a.txt.par2"),
	}, m.Link(filepath.FromSlash("/s/a.txt")))
}
