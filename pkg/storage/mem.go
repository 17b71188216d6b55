package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// Mem is a map-backed Engine for the mem scheme.  It is the test
// double for remote backends and is also handy for callers that want
// to stage streams in memory.  Writes through a handle land in the
// object immediately so a test can observe buffering behavior.
type Mem struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ Engine = (*Mem)(nil)

func NewMem() *Mem {
	return &Mem{objects: make(map[string][]byte)}
}

func (m *Mem) Create(_ context.Context, u *URI) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[u.Path] = nil
	return &memHandle{mem: m, key: u.Path}, nil
}

func (m *Mem) Append(_ context.Context, u *URI) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[u.Path]; !ok {
		return nil, fmt.Errorf("%s: %w", u, fs.ErrNotExist)
	}
	return &memHandle{mem: m, key: u.Path}, nil
}

func (m *Mem) Get(_ context.Context, u *URI) (Reader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[u.Path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", u, fs.ErrNotExist)
	}
	return NewBytesReader(append([]byte(nil), b...)), nil
}

func (m *Mem) Delete(_ context.Context, u *URI) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[u.Path]; !ok {
		return fmt.Errorf("%s: %w", u, fs.ErrNotExist)
	}
	delete(m.objects, u.Path)
	return nil
}

func (m *Mem) Exists(_ context.Context, u *URI) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[u.Path]
	return ok, nil
}

func (m *Mem) Size(_ context.Context, u *URI) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[u.Path]
	if !ok {
		return 0, fmt.Errorf("%s: %w", u, fs.ErrNotExist)
	}
	return int64(len(b)), nil
}

func (m *Mem) List(_ context.Context, u *URI) ([]Info, error) {
	prefix := u.Path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var infos []Info
	for key, b := range m.objects {
		name := strings.TrimPrefix(key, prefix)
		if name == key || strings.Contains(name, "/") {
			continue
		}
		infos = append(infos, Info{Name: name, Size: int64(len(b))})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

type memHandle struct {
	mem    *Mem
	key    string
	closed bool
}

func (h *memHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, errors.New("write on closed handle")
	}
	h.mem.mu.Lock()
	defer h.mem.mu.Unlock()
	h.mem.objects[h.key] = append(h.mem.objects[h.key], p...)
	return len(p), nil
}

func (h *memHandle) Sync() error { return nil }

func (h *memHandle) Close() error {
	h.closed = true
	return nil
}

type bytesReader struct {
	*bytes.Reader
}

var _ Reader = (*bytesReader)(nil)
var _ Sizer = (*bytesReader)(nil)

func NewBytesReader(b []byte) *bytesReader {
	return &bytesReader{bytes.NewReader(b)}
}

func (*bytesReader) Close() error {
	return nil
}

func (b *bytesReader) Size() (int64, error) {
	return b.Reader.Size(), nil
}
