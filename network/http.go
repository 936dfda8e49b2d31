package network

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sisu-network/solrpc/config"
)

type Header struct {
	Name  string
	Value string
}

// Transport is a blocking request/response exchange. Every call opens its own session.
type Transport interface {
	Open() (Session, error)
}

// Session is scoped to a single request. Close must be called on every exit path.
type Session interface {
	Request(method, url string, headers []Header) (Request, error)
	Close() error
}

type Request interface {
	Write(p []byte) (int, error)
	Submit() (Response, error)
}

// Response body is drained with Read until it returns io.EOF.
type Response interface {
	Status() int
	// ContentLen is the length announced by the server, if any.
	ContentLen() (uint64, bool)
	Read(p []byte) (int, error)
}

type HttpTransport struct {
	timeout time.Duration
	tlsCfg  *tls.Config
}

func NewHttpTransport(cfg config.Solana) (Transport, error) {
	roots, err := rootPool(cfg)
	if err != nil {
		return nil, err
	}

	return &HttpTransport{
		timeout: time.Duration(cfg.Timeout) * time.Second,
		tlsCfg: &tls.Config{
			RootCAs:    roots,
			MinVersion: tls.VersionTLS12,
		},
	}, nil
}

func rootPool(cfg config.Solana) (*x509.CertPool, error) {
	var pool *x509.CertPool
	if cfg.UseSystemCa {
		var err error
		pool, err = x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("cannot load system cert pool: %w", err)
		}
	} else {
		pool = x509.NewCertPool()
	}

	if cfg.CaFile != "" {
		pem, err := os.ReadFile(cfg.CaFile)
		if err != nil {
			return nil, err
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificate found in %s", cfg.CaFile)
		}
	}

	return pool, nil
}

func (t *HttpTransport) Open() (Session, error) {
	return &httpSession{
		client: &http.Client{
			Timeout: t.timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: t.tlsCfg,
			},
		},
	}, nil
}

type httpSession struct {
	client *http.Client
	resp   *http.Response
}

func (s *httpSession) Request(method, url string, headers []Header) (Request, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}

	for _, h := range headers {
		// net/http writes the length from req.ContentLength and ignores the header.
		if http.CanonicalHeaderKey(h.Name) == "Content-Length" {
			n, err := strconv.ParseInt(h.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid content length %q", h.Value)
			}
			req.ContentLength = n
			continue
		}
		req.Header.Set(h.Name, h.Value)
	}

	return &httpRequest{session: s, req: req}, nil
}

func (s *httpSession) Close() error {
	var err error
	if s.resp != nil {
		err = s.resp.Body.Close()
		s.resp = nil
	}
	s.client.CloseIdleConnections()

	return err
}

type httpRequest struct {
	session *httpSession
	req     *http.Request
	body    bytes.Buffer
}

func (r *httpRequest) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

func (r *httpRequest) Submit() (Response, error) {
	if r.req.ContentLength > 0 && int64(r.body.Len()) != r.req.ContentLength {
		return nil, fmt.Errorf("body length %d does not match content length %d", r.body.Len(), r.req.ContentLength)
	}

	r.req.Body = io.NopCloser(bytes.NewReader(r.body.Bytes()))
	r.req.ContentLength = int64(r.body.Len())

	resp, err := r.session.client.Do(r.req)
	if err != nil {
		return nil, err
	}
	r.session.resp = resp

	return &httpResponse{resp: resp}, nil
}

type httpResponse struct {
	resp *http.Response
}

func (r *httpResponse) Status() int {
	return r.resp.StatusCode
}

func (r *httpResponse) ContentLen() (uint64, bool) {
	if r.resp.ContentLength < 0 {
		return 0, false
	}

	return uint64(r.resp.ContentLength), true
}

func (r *httpResponse) Read(p []byte) (int, error) {
	return r.resp.Body.Read(p)
}
