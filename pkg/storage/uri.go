package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

type Scheme string

const (
	FileScheme Scheme = "file"
	MemScheme  Scheme = "mem"
	HDFSScheme Scheme = "hdfs"
)

func knownScheme(s Scheme) bool {
	switch s {
	case FileScheme, MemScheme, HDFSScheme:
		return true
	}
	return false
}

type URI url.URL

// ParseURI parses the path using `url.Parse`.  If the provided uri does
// not contain a scheme, the scheme is set to file.  Relative paths are
// treated as files and resolved as absolute paths using filepath.Abs.
// If path is empty, a pointer to a zero-valued URI is returned.
func ParseURI(path string) (*URI, error) {
	if path == "" {
		return &URI{}, nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if !knownScheme(Scheme(u.Scheme)) {
		// If we don't know the scheme, either it's empty string,
		// implying a file, or it's a file path with a colon embedded,
		// so we parse it either way as a file.
		return parseBarePath(path)
	}
	if Scheme(u.Scheme) == HDFSScheme {
		if err := checkAuthority(u); err != nil {
			return nil, err
		}
	}
	return (*URI)(u), nil
}

// checkAuthority enforces the host:port form a remote cluster
// connection needs.  A name-node address without a usable port cannot
// be dialed, so it is rejected at parse time rather than at open time.
func checkAuthority(u *url.URL) error {
	if u.Hostname() == "" {
		return fmt.Errorf("%s: missing host specification", u)
	}
	port := u.Port()
	if port == "" {
		return fmt.Errorf("%s: missing port specification", u)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("%s: invalid port specification", u)
	}
	return nil
}

func MustParseURI(path string) *URI {
	u, err := ParseURI(path)
	if err != nil {
		panic(err)
	}
	return u
}

func parseBarePath(path string) (*URI, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &URI{Scheme: string(FileScheme), Path: filepath.ToSlash(path)}, nil
}

func (u URI) String() string {
	return (*url.URL)(&u).String()
}

func (u *URI) Filepath() string {
	return filepath.FromSlash(u.Path)
}

func (u *URI) HasScheme(s Scheme) bool {
	return Scheme(u.Scheme) == s
}

func (p *URI) AppendPath(elem ...string) *URI {
	u := *p
	for _, el := range elem {
		u.Path = u.Path + "/" + el
	}
	return &u
}

func (u *URI) RelPath(target URI) string {
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return strings.TrimPrefix(target.Path, u.Path)
}

func (u *URI) IsZero() bool {
	return *u == URI{}
}

func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URI) UnmarshalText(b []byte) error {
	uri, err := ParseURI(string(b))
	if err != nil {
		return err
	}
	*u = *uri
	return nil
}
