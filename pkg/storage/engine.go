package storage

import (
	"context"
	"errors"
	"io"
)

type Reader interface {
	io.Reader
	io.ReaderAt
	io.Closer
}

type Sizer interface {
	Size() (int64, error)
}

// Syncer is implemented by write handles that can push buffered bytes
// to durable storage before close.
type Syncer interface {
	Sync() error
}

var ErrNotSupported = errors.New("method call on storage engine not supported")

// Engine is the narrow contract between the compression writer and a
// storage backend.  Handles returned by Create and Append accept
// whole-buffer writes only; an Engine is not required to support
// random access on the write path.
type Engine interface {
	Create(context.Context, *URI) (io.WriteCloser, error)
	Append(context.Context, *URI) (io.WriteCloser, error)
	Get(context.Context, *URI) (Reader, error)
	Delete(context.Context, *URI) error
	Exists(context.Context, *URI) (bool, error)
	Size(context.Context, *URI) (int64, error)
	List(context.Context, *URI) ([]Info, error)
}

type Info struct {
	Name string
	Size int64
}

// NewLocalEngine returns a Router with the engines that need no
// external connectivity enabled.
func NewLocalEngine() *Router {
	router := NewRouter()
	router.Enable(FileScheme)
	router.Enable(MemScheme)
	return router
}

func Put(ctx context.Context, engine Engine, u *URI, r io.Reader) error {
	w, err := engine.Create(ctx, u)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

func Get(ctx context.Context, engine Engine, u *URI) ([]byte, error) {
	r, err := engine.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	if closeErr := r.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func Size(r Reader) (int64, error) {
	if sizer, ok := r.(Sizer); ok {
		return sizer.Size()
	}
	return 0, ErrNotSupported
}
