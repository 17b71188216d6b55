// Package lzop implements a streaming, block-oriented compression
// writer for append-only storage backends that accept whole-buffer
// writes.  Caller data accumulates in a backlog until a full block
// (256 KiB by default) is available, each block is compressed
// independently, and the result is emitted as a self-describing frame
// carrying the uncompressed length and, when compression shrank the
// block, the compressed length and Adler-32 checksums of both forms.
// Blocks that do not shrink are stored raw.  A stream begins with a
// one-time header and ends with a four-byte zero terminator written on
// Close.  All multi-byte integers are big-endian.  The storage backend
// is reached through the storage.Engine interface, so the same writer
// works against local files, memory, or any registered remote scheme.
package lzop
