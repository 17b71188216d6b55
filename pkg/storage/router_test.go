package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	ctx := context.Background()
	router := NewLocalEngine()
	u := MustParseURI("mem://testdata/routed")
	require.NoError(t, Put(ctx, router, u, bytes.NewReader([]byte("via router"))))
	b, err := Get(ctx, router, u)
	require.NoError(t, err)
	assert.Equal(t, []byte("via router"), b)
}

func TestRouterUnknownScheme(t *testing.T) {
	ctx := context.Background()
	router := NewLocalEngine()
	u := MustParseURI("hdfs://namenode:9000/logs/a.lzo")
	_, err := router.Create(ctx, u)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = router.Exists(ctx, u)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = router.List(ctx, u)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRouterRegister(t *testing.T) {
	ctx := context.Background()
	router := NewRouter()
	router.Register(HDFSScheme, NewMem())
	u := MustParseURI("hdfs://namenode:9000/logs/a.lzo")
	exists, err := router.Exists(ctx, u)
	require.NoError(t, err)
	assert.False(t, exists)
}
