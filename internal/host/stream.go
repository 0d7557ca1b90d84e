package host

import (
	"io"
	"sync"
)

// backingStream is the host-owned file handle behind a stream-initialized
// component. Close is idempotent.
type backingStream struct {
	rc   io.ReadCloser
	once sync.Once
	err  error
}

func (s *backingStream) Read(p []byte) (int, error) {
	return s.rc.Read(p)
}

func (s *backingStream) Close() error {
	s.once.Do(func() {
		s.err = s.rc.Close()
	})
	return s.err
}

// readOnly hides everything but Read from the component, so it cannot
// close the host's handle.
type readOnly struct {
	r io.Reader
}

func (r readOnly) Read(p []byte) (int, error) {
	return r.r.Read(p)
}
