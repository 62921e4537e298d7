package network

import (
	"context"
	"net"
	"net/url"
	"time"

	"news-ticker/internal/domain/ports"
)

const defaultProbeTimeout = 3 * time.Second

// Probe reports connectivity by opening a TCP connection to a known address.
type Probe struct {
	address string
	timeout time.Duration
	logger  ports.Logger
	dialer  net.Dialer
}

var _ ports.ConnectivityChecker = (*Probe)(nil)

// NewProbe builds a Probe dialing address (host:port).
func NewProbe(address string, timeout time.Duration, logger ports.Logger) *Probe {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Probe{address: address, timeout: timeout, logger: logger}
}

// Connected dials the probe address. An empty address is treated as online.
func (p *Probe) Connected(ctx context.Context) bool {
	if p.address == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		p.logger.Info(ctx, "connectivity probe failed", "address", p.address, "error", err)
		return false
	}
	_ = conn.Close()
	return true
}

// AddressFor derives a probe address from a base url, defaulting the port by scheme.
func AddressFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port)
}
