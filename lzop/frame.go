package lzop

// framer splits accumulated stream data into fixed-size blocks and
// emits one self-describing frame per block.
type framer struct {
	blockSize int
	comp      *compressor
}

// frame frames data into compressed-or-raw blocks.  When data is
// smaller than a block and force is false it declines, returning
// consumed=false so the caller retains data as backlog.  Remainder
// bytes beyond the last full block are absorbed into that block
// rather than forming a short one; a forced flush of less than one
// block frames the whole input as a single block.  On a compressor
// failure any partial output is discarded and the caller should fall
// back to writing the original bytes raw.
func (f *framer) frame(data []byte, force bool) ([]byte, bool, error) {
	if len(data) == 0 || (len(data) < f.blockSize && !force) {
		return nil, false, nil
	}
	blocks := len(data) / f.blockSize
	if blocks == 0 {
		blocks = 1
	}
	out := newAppender()
	for i := 0; i < blocks; i++ {
		block := data[i*f.blockSize:]
		if i < blocks-1 {
			block = block[:f.blockSize]
		}
		if err := f.encodeBlock(out, block); err != nil {
			return nil, false, err
		}
	}
	return out.buf, true, nil
}

// encodeBlock emits one frame.  Frames with a shrunken block carry
// both lengths, both Adler-32 sums, and the compressed bytes.  Frames
// storing a raw block repeat the uncompressed length and omit the
// checksums; a reader can tell the two apart only by comparing the
// length fields, which makes a block that compressed to exactly its
// own size indistinguishable from a raw one.  Such blocks are stored
// raw here, so the two encodings coincide.
func (f *framer) encodeBlock(out *appender, block []byte) error {
	z, err := f.comp.compress(block)
	if err != nil {
		return err
	}
	out.uint32(uint32(len(block)))
	if len(z) > 0 && len(z) < len(block) {
		out.uint32(uint32(len(z)))
		out.uint32(adlerUpdate(adlerInit, block))
		out.uint32(adlerUpdate(adlerInit, z))
		out.raw(z)
		return nil
	}
	out.uint32(uint32(len(block)))
	out.raw(block)
	return nil
}
