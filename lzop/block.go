package lzop

import (
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/exp/slices"
)

const (
	// DefaultBlockSize is the unit of compression: accumulated data is
	// split into blocks of this many uncompressed bytes.
	DefaultBlockSize = 256 * 1024

	// BestCompression selects the slower maximal-ratio block mode.
	// Every other nonzero level uses the single-pass fast mode.
	BestCompression = 9
)

var (
	// ErrAlgorithm indicates the block compressor reported a failure
	// or produced a result beyond the worst-case expansion bound.
	// Neither should happen in practice; the writer reacts by storing
	// the pending bytes raw so no data is lost.
	ErrAlgorithm = errors.New("internal compression error")

	// ErrCompressionInit indicates the compression level could not be
	// initialized.  The writer downgrades to compression disabled.
	ErrCompressionInit = errors.New("unsupported compression level")
)

// compressBound is the worst-case size of a compressed block.  A
// result above the bound can only come from algorithm corruption.
func compressBound(n int) int {
	return n + n/16 + 64 + 3
}

// compressor compresses one block at a time into a scratch buffer that
// is grown once per variant and reused across flushes.
type compressor struct {
	level   int
	fast    lz4.Compressor
	best    lz4.CompressorHC
	scratch []byte
}

func newCompressor(level int) (*compressor, error) {
	if level < 1 || level > BestCompression {
		return nil, fmt.Errorf("level %d: %w", level, ErrCompressionInit)
	}
	c := &compressor{level: level}
	if level == BestCompression {
		c.best = lz4.CompressorHC{Level: lz4.Level9}
	}
	return c, nil
}

// compress returns the compressed form of block, backed by the
// compressor's scratch buffer and valid until the next call.  A nil
// result with nil error means the block is incompressible; the caller
// decides between the compressed and raw encodings either way.
func (c *compressor) compress(block []byte) ([]byte, error) {
	bound := compressBound(len(block))
	c.scratch = slices.Grow(c.scratch[:0], bound)[:bound]
	var zlen int
	var err error
	if c.level == BestCompression {
		zlen, err = c.best.CompressBlock(block, c.scratch)
	} else {
		zlen, err = c.fast.CompressBlock(block, c.scratch)
	}
	if err != nil && err != lz4.ErrInvalidSourceShortBuffer {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithm, err)
	}
	if zlen > bound {
		return nil, fmt.Errorf("%w: %d compressed bytes exceed the %d-byte bound", ErrAlgorithm, zlen, bound)
	}
	if zlen == 0 {
		return nil, nil
	}
	return c.scratch[:zlen], nil
}
