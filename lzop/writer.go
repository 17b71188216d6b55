package lzop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/streampack/lzop/pkg/storage"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrAlreadyOpen is returned by OpenWrite on a writer whose handle is
// already open.  The writer's state is left unchanged.
var ErrAlreadyOpen = errors.New("already open for write")

// compressedSuffix is stripped from the object's base name before it
// is recorded in the stream header.
const compressedSuffix = ".lzo"

// WriterOpts configures a Writer.  The zero value means no
// compression, DefaultBlockSize, and no logging.
type WriterOpts struct {
	// Level selects the compression level.  0 disables compression
	// entirely; BestCompression selects the maximal-ratio mode.
	Level int
	// BlockSize overrides the unit of compression.  Intended for
	// tests; production streams should use the default.
	BlockSize int
	Logger    *zap.Logger
}

// Writer writes one named storage object, optionally compressing the
// stream in fixed-size blocks.  Data passed to Write accumulates in a
// backlog until a full block is available, so callers must Close on
// every exit path or buffered bytes are silently dropped.
//
// A Writer must not be used from more than one goroutine; it is a
// single logical stream and carries no internal locking.
type Writer struct {
	engine    storage.Engine
	uri       *storage.URI
	logger    *zap.Logger
	blockSize int

	level     int
	framer    *framer
	handle    io.WriteCloser
	appending bool
	backlog   []byte

	// Set once the engine reports the backend unreachable; every
	// subsequent operation fails with it.
	unavailable error
}

// NewWriter returns a Writer for the object named by uri.  The backend
// is not contacted until the first operation that needs it.
func NewWriter(engine storage.Engine, uri *storage.URI, opts WriterOpts) (*Writer, error) {
	if engine == nil {
		return nil, errors.New("nil storage engine")
	}
	if uri == nil || uri.IsZero() {
		return nil, errors.New("no target uri")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	w := &Writer{
		engine:    engine,
		uri:       uri,
		logger:    logger,
		blockSize: blockSize,
	}
	if opts.Level != 0 {
		if err := w.SetLevel(opts.Level); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// SetLevel changes the compression level for subsequently opened
// streams.  Level 0 disables compression.  A level the compressor
// cannot initialize downgrades the writer to level 0 and returns the
// error; the writer remains usable uncompressed.
func (w *Writer) SetLevel(level int) error {
	if level == 0 {
		w.level = 0
		w.framer = nil
		return nil
	}
	comp, err := newCompressor(level)
	if err != nil {
		w.level = 0
		w.framer = nil
		w.logger.Warn("Compression unavailable, continuing without it",
			zap.Int("level", level), zap.Error(err))
		return err
	}
	w.level = level
	w.framer = &framer{blockSize: w.blockSize, comp: comp}
	return nil
}

// Level returns the effective compression level; 0 means disabled.
func (w *Writer) Level() int { return w.level }

// Appending reports whether the open handle extends an existing
// object rather than a fresh one.
func (w *Writer) Appending() bool { return w.appending }

// OpenWrite opens the target object.  An existing object is opened
// for append with compression force-disabled for the session: appends
// continue a stream whose header was already written, and a second
// header mid-stream would corrupt it.  A fresh object is created and,
// when compression is enabled, receives the stream header before any
// data frame.
func (w *Writer) OpenWrite(ctx context.Context) error {
	if w.unavailable != nil {
		return w.unavailable
	}
	if w.handle != nil {
		w.logger.Warn("Already open for write", zap.Stringer("uri", w.uri))
		return fmt.Errorf("%s: %w", w.uri, ErrAlreadyOpen)
	}
	exists, err := w.engine.Exists(ctx, w.uri)
	if err != nil {
		return w.checkUnavailable(err)
	}
	if exists {
		handle, err := w.engine.Append(ctx, w.uri)
		if err != nil {
			return w.checkUnavailable(err)
		}
		if w.level != 0 {
			w.logger.Info("Disabling compression for append", zap.Stringer("uri", w.uri))
			w.SetLevel(0)
		}
		w.handle = handle
		w.appending = true
		w.logger.Debug("Opened for append", zap.Stringer("uri", w.uri))
		return nil
	}
	handle, err := w.engine.Create(ctx, w.uri)
	if err != nil {
		return w.checkUnavailable(err)
	}
	w.handle = handle
	w.appending = false
	if w.level != 0 {
		if err := w.writeAll(encodeHeader(w.basename(), w.level)); err != nil {
			return err
		}
		w.backlog = w.backlog[:0]
	}
	w.logger.Debug("Opened for write", zap.Stringer("uri", w.uri))
	return nil
}

// Write appends p to the stream, opening the target first if needed.
// With compression disabled p goes straight to the backend.  With
// compression enabled p joins the backlog; nothing reaches the
// backend until a full block has accumulated, and success without
// backend traffic is still success.  Short writes are hard failures
// and are not retried here.
func (w *Writer) Write(ctx context.Context, p []byte) error {
	if w.unavailable != nil {
		return w.unavailable
	}
	if w.handle == nil {
		if err := w.OpenWrite(ctx); err != nil {
			return err
		}
	}
	if w.level == 0 {
		return w.writeAll(p)
	}
	w.backlog = append(w.backlog, p...)
	out, consumed, err := w.framer.frame(w.backlog, false)
	if err != nil {
		return w.writeRawFallback(err)
	}
	if !consumed {
		return nil
	}
	w.backlog = w.backlog[:0]
	return w.writeAll(out)
}

// Close force-flushes the backlog, writes the end-of-stream
// terminator, and closes the underlying handle.  Close on a writer
// that never opened a handle is a no-op.
func (w *Writer) Close() error {
	if w.handle == nil {
		w.logger.Debug("Close without open handle", zap.Stringer("uri", w.uri))
		return nil
	}
	var err error
	if w.level != 0 {
		out, consumed, ferr := w.framer.frame(w.backlog, true)
		switch {
		case ferr != nil:
			err = w.writeRawFallback(ferr)
		case consumed:
			w.backlog = w.backlog[:0]
			err = w.writeAll(out)
		}
		// The terminator goes out even after a failed flush so a
		// reader sees a bounded stream.
		err = multierr.Append(err, w.writeAll(terminator))
	}
	err = multierr.Append(err, w.handle.Close())
	w.handle = nil
	w.appending = false
	w.logger.Debug("Closed", zap.Stringer("uri", w.uri))
	return err
}

// Flush pushes acknowledged bytes toward durable storage when the
// backend supports it.  It does not force-frame the backlog; only
// Close does that.
func (w *Writer) Flush() error {
	if w.handle == nil {
		return nil
	}
	if s, ok := w.handle.(storage.Syncer); ok {
		return s.Sync()
	}
	return nil
}

// Truncate deletes the target object and reopens it for write,
// discarding the backlog.  The writer must not have an open handle.
func (w *Writer) Truncate(ctx context.Context) error {
	if w.unavailable != nil {
		return w.unavailable
	}
	if w.handle != nil {
		return fmt.Errorf("%s: %w", w.uri, ErrAlreadyOpen)
	}
	w.logger.Debug("Truncate", zap.Stringer("uri", w.uri))
	w.backlog = w.backlog[:0]
	if err := w.engine.Delete(ctx, w.uri); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return w.checkUnavailable(err)
	}
	return w.OpenWrite(ctx)
}

// Size reports the stored object's size, or 0 when it cannot be
// determined.
func (w *Writer) Size(ctx context.Context) int64 {
	size, err := w.engine.Size(ctx, w.uri)
	if err != nil {
		return 0
	}
	return size
}

// Remove deletes the target object.
func (w *Writer) Remove(ctx context.Context) error {
	if w.unavailable != nil {
		return w.unavailable
	}
	w.logger.Debug("Remove", zap.Stringer("uri", w.uri))
	return w.checkUnavailable(w.engine.Delete(ctx, w.uri))
}

var terminator = []byte{0, 0, 0, 0}

// writeRawFallback handles a block-compressor failure: the flush is
// abandoned, the anomaly is logged loudly, and the pending bytes are
// written uncompressed so nothing is lost.
func (w *Writer) writeRawFallback(cause error) error {
	w.logger.Error("Block compression failed, storing data raw",
		zap.Stringer("uri", w.uri), zap.Error(cause))
	raw := w.backlog
	w.backlog = nil
	return w.writeAll(raw)
}

func (w *Writer) writeAll(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := w.handle.Write(p)
	if err != nil {
		return fmt.Errorf("%s: %w", w.uri, err)
	}
	if n != len(p) {
		return fmt.Errorf("%s: wrote %d of %d bytes: %w", w.uri, n, len(p), io.ErrShortWrite)
	}
	return nil
}

func (w *Writer) basename() string {
	return strings.TrimSuffix(path.Base(w.uri.Path), compressedSuffix)
}

// checkUnavailable latches an unreachable-backend error so later
// operations fail fast without hammering the engine, logging the
// transition once.
func (w *Writer) checkUnavailable(err error) error {
	if errors.Is(err, storage.ErrUnavailable) && w.unavailable == nil {
		w.logger.Error("Storage backend unavailable", zap.Stringer("uri", w.uri), zap.Error(err))
		w.unavailable = err
	}
	return err
}

// List names the entries directly under dir, names only, no path
// prefix.
func List(ctx context.Context, engine storage.Engine, dir *storage.URI) ([]string, error) {
	infos, err := engine.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names, nil
}

// Symlink records oldname as the content of a plain object at
// newname, for backends without native symlinks.  It fails if
// newname already exists.
func Symlink(ctx context.Context, engine storage.Engine, oldname, newname *storage.URI, logger *zap.Logger) error {
	w, err := NewWriter(engine, newname, WriterOpts{Logger: logger})
	if err != nil {
		return err
	}
	exists, err := engine.Exists(ctx, newname)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: symlink target exists: %w", newname, fs.ErrExist)
	}
	if err := w.Write(ctx, []byte(oldname.String())); err != nil {
		return multierr.Append(err, w.Close())
	}
	return w.Close()
}
