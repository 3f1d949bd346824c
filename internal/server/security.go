package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// NewSecurityLayer picks TLS when enableHTTPS is set, plain TCP otherwise.
func NewSecurityLayer(enableHTTPS bool, certFileName, privateKeyFileName string) SecurityLayer {
	if enableHTTPS {
		return NewTLSListener(certFileName, privateKeyFileName)
	}
	return NewPlainListener()
}

// TLSListener serves HTTPS with a certificate loaded from disk.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the key pair and opens a TLS listener that negotiates HTTP/2
// or HTTP/1.1.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
	return tls.Listen(protocol, addr, tlsConfig)
}

// PlainListener serves unencrypted HTTP, for local use or behind a
// terminating proxy.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
