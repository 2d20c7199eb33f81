// Package nginx writes and activates the reverse-proxy vhost for a
// domain, in its two lifecycle states: the ACME bootstrap config and
// the final TLS-terminating proxy config.
package nginx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/entities"
	"github.com/xui-ops/xui-provision/internal/system"
)

// Standard Debian nginx layout.
const (
	DefaultAvailableDir = "/etc/nginx/sites-available"
	DefaultEnabledDir   = "/etc/nginx/sites-enabled"
	DefaultWebroot      = "/var/www/letsencrypt"
)

// Service manages the per-domain vhost file. Both lifecycle states are
// written to the same path under availableDir, so exactly one
// configuration is ever active for the domain.
type Service struct {
	runner       system.Runner
	logger       *zap.Logger
	availableDir string
	enabledDir   string
	webroot      string
}

// New returns new Service using the standard Debian nginx directories.
func New(runner system.Runner, logger *zap.Logger) Service {
	return Service{
		runner:       runner,
		logger:       logger,
		availableDir: DefaultAvailableDir,
		enabledDir:   DefaultEnabledDir,
		webroot:      DefaultWebroot,
	}
}

// NewWithDirs returns new Service with explicit directories.
func NewWithDirs(runner system.Runner, logger *zap.Logger, availableDir, enabledDir, webroot string) Service {
	return Service{
		runner:       runner,
		logger:       logger,
		availableDir: availableDir,
		enabledDir:   enabledDir,
		webroot:      webroot,
	}
}

// Webroot returns the directory the HTTP-01 challenge is served from.
func (s Service) Webroot() string {
	return s.webroot
}

// VhostPath returns the configuration file path for the domain.
func (s Service) VhostPath(domain string) string {
	return filepath.Join(s.availableDir, domain)
}

// PrepareChallenge writes and activates the bootstrap vhost so the ACME
// client can answer the HTTP-01 challenge through the running proxy.
func (s Service) PrepareChallenge(ctx context.Context, domain string) error {
	if err := os.MkdirAll(s.webroot, 0o755); err != nil {
		return fmt.Errorf("failed to create webroot %s: %w", s.webroot, err)
	}
	// nginx workers run as www-data and must be able to read the tokens.
	if err := s.runner.Run(ctx, "chown", "www-data:www-data", s.webroot); err != nil {
		return fmt.Errorf("failed to chown webroot: %w", err)
	}

	var rendered bytes.Buffer
	if err := bootstrapTemplate.Execute(&rendered, bootstrapParams{
		Domain:  domain,
		Webroot: s.webroot,
	}); err != nil {
		return fmt.Errorf("failed to render bootstrap config: %w", err)
	}

	if err := s.writeConfig(domain, rendered.Bytes()); err != nil {
		return err
	}
	if err := s.enable(domain); err != nil {
		return err
	}

	s.logger.Info("bootstrap vhost written", zap.String("domain", domain))

	return s.validateAndReload(ctx)
}

// WriteTLSVhost overwrites the domain's vhost with the final
// TLS-terminating proxy configuration pointing at the certificate bundle.
func (s Service) WriteTLSVhost(ctx context.Context, domain string, tlsPort, backendPort int, bundle entities.CertificateBundle) error {
	var rendered bytes.Buffer
	if err := tlsTemplate.Execute(&rendered, tlsParams{
		Domain:      domain,
		Webroot:     s.webroot,
		TLSPort:     tlsPort,
		BackendPort: backendPort,
		Fullchain:   bundle.FullchainPath,
		PrivateKey:  bundle.PrivateKeyPath,
	}); err != nil {
		return fmt.Errorf("failed to render tls config: %w", err)
	}

	if err := s.writeConfig(domain, rendered.Bytes()); err != nil {
		return err
	}
	if err := s.enable(domain); err != nil {
		return err
	}

	s.logger.Info("tls vhost written",
		zap.String("domain", domain),
		zap.Int("tls_port", tlsPort),
		zap.Int("backend_port", backendPort),
	)

	return s.validateAndReload(ctx)
}

// writeConfig replaces the vhost file atomically: the rendered text is
// written next to the target and moved over it, so a crash mid-write
// cannot leave a truncated config behind.
func (s Service) writeConfig(domain string, content []byte) error {
	target := s.VhostPath(domain)

	tmp, err := os.CreateTemp(s.availableDir, domain+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("failed to write temp config: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("failed to chmod temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp config: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace config %s: %w", target, err)
	}

	return nil
}

// enable links the vhost into the enabled-sites directory.
// An already existing link is fine, re-runs hit this path.
func (s Service) enable(domain string) error {
	link := filepath.Join(s.enabledDir, domain)

	err := os.Symlink(s.VhostPath(domain), link)
	if err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("failed to enable site %s: %w", domain, err)
	}

	return nil
}

// validateAndReload runs the syntax check before asking the proxy to
// reload. Reloading an invalid config would take every site down.
func (s Service) validateAndReload(ctx context.Context) error {
	if err := s.runner.Run(ctx, "nginx", "-t"); err != nil {
		return fmt.Errorf("nginx config validation failed: %w", err)
	}
	if err := s.runner.Run(ctx, "systemctl", "reload", "nginx"); err != nil {
		return fmt.Errorf("failed to reload nginx: %w", err)
	}

	return nil
}
