package lzop

import (
	"hash/adler32"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdlerUpdate(t *testing.T) {
	t.Parallel()
	cases := [][]byte{
		nil,
		[]byte("a"),
		[]byte("Wikipedia"),
		make([]byte, 5551),
		make([]byte, 5552),
		make([]byte, 5553),
	}
	long := make([]byte, 100000)
	rand.New(rand.NewSource(1)).Read(long)
	cases = append(cases, long)
	for _, c := range cases {
		assert.Equal(t, adler32.Checksum(c), adlerUpdate(adlerInit, c))
	}
}

func TestAdlerUpdateResumable(t *testing.T) {
	t.Parallel()
	data := make([]byte, 20000)
	rand.New(rand.NewSource(2)).Read(data)
	whole := adlerUpdate(adlerInit, data)
	for _, split := range []int{0, 1, 9, 5552, len(data) - 1, len(data)} {
		sum := adlerUpdate(adlerInit, data[:split])
		require.Equal(t, whole, adlerUpdate(sum, data[split:]), "split at %d", split)
	}
}
