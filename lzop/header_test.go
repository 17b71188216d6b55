package lzop

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeader(t *testing.T) {
	t.Parallel()
	const name = "events"
	h := encodeHeader(name, 3)
	require.Equal(t, headerMagic, h[:len(headerMagic)])
	fields := h[len(headerMagic):]
	assert.EqualValues(t, formatVersion, binary.BigEndian.Uint16(fields))
	assert.EqualValues(t, libraryVersion, binary.BigEndian.Uint16(fields[2:]))
	assert.EqualValues(t, versionToExtract, binary.BigEndian.Uint16(fields[4:]))
	assert.EqualValues(t, methodLZO1X, fields[6])
	assert.EqualValues(t, 3, fields[7])
	assert.EqualValues(t, headerFlags, binary.BigEndian.Uint32(fields[8:]))
	assert.EqualValues(t, headerMode, binary.BigEndian.Uint32(fields[12:]))
	assert.EqualValues(t, 0, binary.BigEndian.Uint32(fields[16:])) // mtime
	assert.EqualValues(t, 0, binary.BigEndian.Uint32(fields[20:])) // gmtdiff
	assert.EqualValues(t, len(name), fields[24])
	assert.Equal(t, name, string(fields[25:25+len(name)]))
	// The trailing checksum is seeded after the magic and covers every
	// field through the name.
	sum := adlerUpdate(adlerInit, fields[:25+len(name)])
	assert.Equal(t, sum, binary.BigEndian.Uint32(fields[25+len(name):]))
	assert.Len(t, fields, 25+len(name)+4)
}

func TestEncodeHeaderDeterministic(t *testing.T) {
	t.Parallel()
	assert.Equal(t, encodeHeader("x", 1), encodeHeader("x", 1))
	assert.NotEqual(t, encodeHeader("x", 1), encodeHeader("x", 9))
}
