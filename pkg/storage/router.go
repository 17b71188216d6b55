package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrUnavailable is returned when a URI's scheme has no enabled
// engine, e.g. a remote cluster scheme with no registered connector.
// Callers should treat it as terminal for the target in question.
var ErrUnavailable = errors.New("no storage engine for scheme")

// Router dispatches Engine calls by URI scheme.
type Router struct {
	engines map[Scheme]Engine
}

var _ Engine = (*Router)(nil)

func NewRouter() *Router {
	return &Router{engines: make(map[Scheme]Engine)}
}

// Enable activates the built-in engine for scheme.  Schemes without a
// built-in engine (e.g. hdfs) must be registered explicitly.
func (r *Router) Enable(scheme Scheme) {
	switch scheme {
	case FileScheme:
		r.Register(scheme, NewFileSystem())
	case MemScheme:
		r.Register(scheme, NewMem())
	}
}

func (r *Router) Register(scheme Scheme, engine Engine) {
	r.engines[scheme] = engine
}

func (r *Router) lookup(u *URI) (Engine, error) {
	scheme := Scheme(u.Scheme)
	if scheme == "" {
		scheme = FileScheme
	}
	if engine, ok := r.engines[scheme]; ok {
		return engine, nil
	}
	return nil, fmt.Errorf("%s: %w", u, ErrUnavailable)
}

func (r *Router) Create(ctx context.Context, u *URI) (io.WriteCloser, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return nil, err
	}
	return engine.Create(ctx, u)
}

func (r *Router) Append(ctx context.Context, u *URI) (io.WriteCloser, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return nil, err
	}
	return engine.Append(ctx, u)
}

func (r *Router) Get(ctx context.Context, u *URI) (Reader, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return nil, err
	}
	return engine.Get(ctx, u)
}

func (r *Router) Delete(ctx context.Context, u *URI) error {
	engine, err := r.lookup(u)
	if err != nil {
		return err
	}
	return engine.Delete(ctx, u)
}

func (r *Router) Exists(ctx context.Context, u *URI) (bool, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return false, err
	}
	return engine.Exists(ctx, u)
}

func (r *Router) Size(ctx context.Context, u *URI) (int64, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return 0, err
	}
	return engine.Size(ctx, u)
}

func (r *Router) List(ctx context.Context, u *URI) ([]Info, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return nil, err
	}
	return engine.List(ctx, u)
}
