package network

import (
	"errors"
	"io"

	"go.uber.org/atomic"
)

// MockTransport serves a fixed response from memory. Body is handed out ChunkSize bytes per Read
// (everything at once when ChunkSize is 0).
type MockTransport struct {
	Status        int
	Body          []byte
	ChunkSize     int
	ContentLength *uint64

	OpenErr    error
	RequestErr error
	WriteErr   error
	SubmitErr  error
	// ReadErr is returned once ReadErrAfter bytes of the body have been served.
	ReadErr      error
	ReadErrAfter int

	OpenFunc func() (Session, error)

	// Filled by the last request.
	Method  string
	Url     string
	Headers []Header
	Written []byte

	opened atomic.Int32
	closed atomic.Int32
}

func (m *MockTransport) Open() (Session, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc()
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}

	m.opened.Inc()
	return &mockSession{transport: m}, nil
}

// Opened returns the number of sessions opened so far.
func (m *MockTransport) Opened() int {
	return int(m.opened.Load())
}

// Released returns the number of sessions closed so far.
func (m *MockTransport) Released() int {
	return int(m.closed.Load())
}

type mockSession struct {
	transport *MockTransport
	closed    bool
}

func (s *mockSession) Request(method, url string, headers []Header) (Request, error) {
	m := s.transport
	if m.RequestErr != nil {
		return nil, m.RequestErr
	}

	m.Method = method
	m.Url = url
	m.Headers = headers
	m.Written = nil

	return &mockRequest{transport: m}, nil
}

func (s *mockSession) Close() error {
	if s.closed {
		return errors.New("session already closed")
	}

	s.closed = true
	s.transport.closed.Inc()
	return nil
}

type mockRequest struct {
	transport *MockTransport
}

func (r *mockRequest) Write(p []byte) (int, error) {
	if r.transport.WriteErr != nil {
		return 0, r.transport.WriteErr
	}

	r.transport.Written = append(r.transport.Written, p...)
	return len(p), nil
}

func (r *mockRequest) Submit() (Response, error) {
	if r.transport.SubmitErr != nil {
		return nil, r.transport.SubmitErr
	}

	return &mockResponse{transport: r.transport}, nil
}

type mockResponse struct {
	transport *MockTransport
	offset    int
}

func (r *mockResponse) Status() int {
	return r.transport.Status
}

func (r *mockResponse) ContentLen() (uint64, bool) {
	if r.transport.ContentLength != nil {
		return *r.transport.ContentLength, true
	}

	return 0, false
}

func (r *mockResponse) Read(p []byte) (int, error) {
	m := r.transport
	if m.ReadErr != nil && r.offset >= m.ReadErrAfter {
		return 0, m.ReadErr
	}
	if r.offset >= len(m.Body) {
		return 0, io.EOF
	}

	end := len(m.Body)
	if m.ChunkSize > 0 && r.offset+m.ChunkSize < end {
		end = r.offset + m.ChunkSize
	}
	if m.ReadErr != nil && m.ReadErrAfter > r.offset && m.ReadErrAfter < end {
		end = m.ReadErrAfter
	}

	n := copy(p, m.Body[r.offset:end])
	r.offset += n

	return n, nil
}
