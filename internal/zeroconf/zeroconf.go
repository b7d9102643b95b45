// Package zeroconf advertises the editor's HTTP API over mDNS/DNS-SD so a
// canvas running on another machine (a tablet next to the monitors) can
// find it.
package zeroconf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grandcat/zeroconf"
)

const (
	serviceType = "_http._tcp"
	domain      = "local."
)

// Service manages mDNS service registration.
type Service struct {
	name string // instance name, e.g. "monitoradlo on thinkpad"
	port int
	txt  []string
}

// New creates a zeroconf Service advertising port under name. secured tells
// clients whether they need an API key.
func New(name string, port int, version string, secured bool) *Service {
	return &Service{
		name: name,
		port: port,
		txt:  TXTRecords(version, secured),
	}
}

// TXTRecords returns the TXT records describing the editor API.
func TXTRecords(version string, secured bool) []string {
	auth := "none"
	if secured {
		auth = "api-key"
	}
	return []string{
		"app=monitoradlo",
		"version=" + version,
		"path=/api",
		"auth=" + auth,
	}
}

// Start registers the mDNS service and blocks until ctx is cancelled, at which
// point it shuts down the server cleanly.
func (s *Service) Start(ctx context.Context) error {
	if s.port <= 0 {
		return fmt.Errorf("zeroconf: invalid port %d", s.port)
	}
	server, err := zeroconf.Register(
		s.name,      // instance name
		serviceType, // service type
		domain,      // domain
		s.port,      // port
		s.txt,       // TXT records
		nil,         // ifaces: nil means all interfaces
	)
	if err != nil {
		return fmt.Errorf("zeroconf register: %w", err)
	}
	slog.Info("zeroconf: registered mDNS service",
		"name", s.name,
		"port", s.port,
		"txt", s.txt,
	)

	<-ctx.Done()

	server.Shutdown()
	slog.Info("zeroconf: mDNS service unregistered")
	return nil
}
