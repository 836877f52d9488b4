// Package source acquires a GFF3 byte stream from a local path or a
// remote http(s)/ftp location, transparently decompressing gzip input,
// and exposes it as a line iterator.
package source

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

const (
	httpTimeout = 30 * time.Minute
	ftpTimeout  = 30 * time.Second

	scanBufferInitial = 1024 * 1024
	scanBufferMax     = 16 * 1024 * 1024
)

// Source is an opened, possibly-decompressed byte stream over a GFF3
// file, plus the scoped resources that must be released together.
type Source struct {
	reader  io.Reader
	closers []io.Closer
}

// closerFunc adapts a plain func() error to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open acquires location, which may be an http(s)/ftp URL or a local
// filesystem path, detecting gzip compression unless forceGzip already
// pins the answer. The caller must call Close on the returned Source
// exactly once, on every exit path.
func Open(location string, forceGzip bool) (*Source, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return openHTTP(location, forceGzip)
	case strings.HasPrefix(location, "ftp://"):
		return openFTP(location, forceGzip)
	default:
		return openLocal(location, forceGzip)
	}
}

// Lines returns a scanner over the decompressed text stream, sized for
// the long attribute columns found in dense GFF3 annotation files.
func (s *Source) Lines() *bufio.Scanner {
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, scanBufferInitial), scanBufferMax)
	return scanner
}

// Close releases every resource acquired by Open, innermost first (the
// gzip adapter, when present, before the underlying transport handle).
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openHTTP(location string, forceGzip bool) (*Source, error) {
	client := &http.Client{Timeout: httpTimeout}

	resp, err := client.Get(location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", location, resp.Status)
	}

	return wrap(resp.Body, forceGzip || remoteGzipped(location))
}

func openFTP(location string, forceGzip bool) (*Source, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse ftp url %s: %w", location, err)
	}

	addr := u.Host
	if !strings.Contains(addr, ":") {
		addr += ":21"
	}

	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(ftpTimeout))
	if err != nil {
		return nil, fmt.Errorf("dial ftp %s: %w", addr, err)
	}

	user, pass := "anonymous", "anonymous"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if err := conn.Login(user, pass); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("ftp login to %s: %w", addr, err)
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		conn.Quit()
		return nil, fmt.Errorf("ftp retrieve %s: %w", u.Path, err)
	}

	src, err := wrap(resp, forceGzip || remoteGzipped(location))
	if err != nil {
		conn.Quit()
		return nil, err
	}
	src.closers = append([]io.Closer{closerFunc(conn.Quit)}, src.closers...)
	return src, nil
}

func openLocal(path string, forceGzip bool) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("open %s: not a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	gzipped := forceGzip
	if !gzipped {
		magic := make([]byte, 2)
		n, _ := f.Read(magic)
		gzipped = n == 2 && magic[0] == 0x1f && magic[1] == 0x8b
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("seek %s: %w", path, err)
		}
	}

	return wrap(f, gzipped)
}

// wrap layers a gzip.Reader over rc when gzipped, tracking both as
// closers so Close releases the gzip stream before the transport.
func wrap(rc io.ReadCloser, gzipped bool) (*Source, error) {
	closers := []io.Closer{rc}
	reader := io.Reader(rc)

	if gzipped {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		closers = append(closers, gz)
		reader = gz
	}

	return &Source{reader: reader, closers: closers}, nil
}

// remoteGzipped applies the suffix heuristic used for http(s)/ftp
// locations, where magic-byte peeking is not available without
// buffering the whole response.
func remoteGzipped(location string) bool {
	return strings.HasSuffix(location, ".gz") || strings.HasSuffix(location, ".gzip")
}
