package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedListener struct {
	ln  net.Listener
	err error
}

func (f fixedListener) Listen(string, string) (net.Listener, error) {
	return f.ln, f.err
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0")
	assert.Equal(t, ":0", s.Address())
}

func TestHTTPServer_StartListenError(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0")

	err := s.Start(fixedListener{err: errors.New("address in use")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestHTTPServer_StartServesAndStops(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	s := NewHTTPServer(handler, ln.Addr().String())

	done := make(chan error, 1)
	go func() { done <- s.Start(fixedListener{ln: ln}) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, <-done)
}

// capturingLayer hands out the listener it opened so tests learn the port.
type capturingLayer struct {
	layer SecurityLayer
	ln    chan net.Listener
}

func (c capturingLayer) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := c.layer.Listen(protocol, addr)
	if err == nil {
		c.ln <- ln
	}
	return ln, err
}

func TestHTTPServer_ServesOverTLS(t *testing.T) {
	tempDir := t.TempDir()
	certFile := filepath.Join(tempDir, "test.crt")
	keyFile := filepath.Join(tempDir, "test.key")
	createTestCertificate(t, certFile, keyFile)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "secure")
	})
	s := NewHTTPServer(handler, "127.0.0.1:0")
	layer := capturingLayer{layer: NewSecurityLayer(true, certFile, keyFile), ln: make(chan net.Listener, 1)}

	done := make(chan error, 1)
	go func() { done <- s.Start(layer) }()

	var ln net.Listener
	select {
	case ln = <-layer.ln:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not opened")
	}

	client := &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}}
	resp, err := client.Get("https://" + ln.Addr().String())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, "secure", string(body))
	require.NotNil(t, resp.TLS)
	assert.GreaterOrEqual(t, resp.TLS.Version, uint16(tls.VersionTLS12))

	client.CloseIdleConnections()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, <-done)
}
