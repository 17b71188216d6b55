package lzop

// Stream header layout, written once per freshly created compressed
// stream and never rewritten.  The checksum is seeded immediately
// after the magic and covers every header byte through the name.
var headerMagic = []byte{0x89, 0x4c, 0x5a, 0x4f, 0x00, 0x0d, 0x0a, 0x1a, 0x0a}

const (
	formatVersion    = 0x1010
	libraryVersion   = 0x2080
	versionToExtract = 0x0940
	methodLZO1X      = 1

	flagAdler32D = 0x00000001
	flagAdler32C = 0x00000002
	headerFlags  = flagAdler32D | flagAdler32C

	headerMode = 0o664
)

// encodeHeader builds the stream header for the given base name and
// compression level.  The mtime and timezone-offset fields are always
// zero: streams are append-only and the fields exist for layout
// compatibility, not provenance.
func encodeHeader(name string, level int) []byte {
	a := newAppender()
	a.raw(headerMagic)
	a.uint16(formatVersion)
	a.uint16(libraryVersion)
	a.uint16(versionToExtract)
	a.uint8(methodLZO1X)
	a.uint8(uint8(level))
	a.uint32(headerFlags)
	a.uint32(headerMode)
	a.uint32(0) // mtime
	a.uint32(0) // gmtdiff
	a.uint8(uint8(len(name)))
	a.bytes([]byte(name))
	a.uint32(a.sum)
	return a.buf
}
