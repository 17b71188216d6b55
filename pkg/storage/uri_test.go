package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURIBarePath(t *testing.T) {
	u, err := ParseURI("testdata/sample.lzo")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(FileScheme))
	assert.True(t, filepath.IsAbs(u.Filepath()))
}

func TestParseURISchemes(t *testing.T) {
	u, err := ParseURI("file:///tmp/x")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(FileScheme))
	assert.Equal(t, "/tmp/x", u.Path)

	u, err = ParseURI("mem://bucket/key")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(MemScheme))
	assert.Equal(t, "/key", u.Path)

	u, err = ParseURI("")
	require.NoError(t, err)
	assert.True(t, u.IsZero())
}

func TestParseURIHDFSAuthority(t *testing.T) {
	u, err := ParseURI("hdfs://namenode:9000/logs/a.lzo")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(HDFSScheme))
	assert.Equal(t, "/logs/a.lzo", u.Path)

	_, err = ParseURI("hdfs://namenode/logs/a.lzo")
	assert.ErrorContains(t, err, "missing port")

	_, err = ParseURI("hdfs:///logs/a.lzo")
	assert.ErrorContains(t, err, "missing host")

	_, err = ParseURI("hdfs://namenode:123456/logs/a.lzo")
	assert.ErrorContains(t, err, "invalid port")
}

func TestURIRoundTrip(t *testing.T) {
	for _, s := range []string{"file:///a/b", "mem://x/y", "hdfs://h:1/z"} {
		u := MustParseURI(s)
		assert.Equal(t, s, u.String())

		var parsed URI
		require.NoError(t, parsed.UnmarshalText([]byte(s)))
		assert.Equal(t, *u, parsed)
	}
}

func TestURIAppendPath(t *testing.T) {
	u := MustParseURI("mem://x/dir")
	v := u.AppendPath("sub", "leaf")
	assert.Equal(t, "/dir/sub/leaf", v.Path)
	// The receiver is unchanged.
	assert.Equal(t, "/dir", u.Path)
}
