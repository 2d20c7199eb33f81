// Package certbot obtains the Let's Encrypt certificate for a domain
// and verifies the resulting bundle on disk.
package certbot

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/entities"
	"github.com/xui-ops/xui-provision/internal/system"
)

// DefaultLiveDir is certbot's live-certificate store.
const DefaultLiveDir = "/etc/letsencrypt/live"

var (
	errNoCertificate = errors.New("no certificate in fullchain file")
)

// Service drives the ACME client. In webroot mode the running proxy
// answers the challenge; in standalone mode certbot binds port 80
// itself and nginx is stopped for the duration.
type Service struct {
	runner  system.Runner
	logger  *zap.Logger
	liveDir string
	webroot string
}

// New returns new Service using certbot's standard live directory.
func New(runner system.Runner, logger *zap.Logger, webroot string) Service {
	return Service{
		runner:  runner,
		logger:  logger,
		liveDir: DefaultLiveDir,
		webroot: webroot,
	}
}

// NewWithLiveDir returns new Service reading bundles from liveDir.
func NewWithLiveDir(runner system.Runner, logger *zap.Logger, webroot, liveDir string) Service {
	return Service{
		runner:  runner,
		logger:  logger,
		liveDir: liveDir,
		webroot: webroot,
	}
}

// Bundle returns the certificate bundle for the domain and whether both
// of its files are already on disk.
func (s Service) Bundle(domain string) (entities.CertificateBundle, bool) {
	bundle := entities.CertificateBundle{
		FullchainPath:  filepath.Join(s.liveDir, domain, "fullchain.pem"),
		PrivateKeyPath: filepath.Join(s.liveDir, domain, "privkey.pem"),
	}

	if _, err := os.Stat(bundle.FullchainPath); err != nil {
		return bundle, false
	}
	if _, err := os.Stat(bundle.PrivateKeyPath); err != nil {
		return bundle, false
	}

	return bundle, true
}

// Obtain requests a certificate for exactly the one domain and returns
// the verified bundle. In standalone mode nginx is stopped first and
// started again no matter how the acquisition ends.
func (s Service) Obtain(ctx context.Context, domain, email string, standalone bool) (entities.CertificateBundle, error) {
	args := []string{
		"certonly",
		"--non-interactive",
		"--agree-tos",
		"-m", email,
		"-d", domain,
	}

	if standalone {
		args = append(args, "--standalone")

		if err := s.runner.Run(ctx, "systemctl", "stop", "nginx"); err != nil {
			return entities.CertificateBundle{}, fmt.Errorf("failed to stop nginx for standalone mode: %w", err)
		}
		// Port 80 must go back to nginx on every exit path. The restart
		// uses a fresh context so cancellation cannot skip it.
		defer func() {
			restartCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if err := s.runner.Run(restartCtx, "systemctl", "start", "nginx"); err != nil {
				s.logger.Error("failed to start nginx after standalone acquisition", zap.Error(err))
			}
		}()
	} else {
		args = append(args, "--webroot", "-w", s.webroot)
	}

	if err := s.runner.Run(ctx, "certbot", args...); err != nil {
		return entities.CertificateBundle{}, fmt.Errorf("certbot failed for %q: %w", domain, err)
	}

	bundle, ok := s.Bundle(domain)
	if !ok {
		return entities.CertificateBundle{}, fmt.Errorf(
			"certbot reported success but bundle is missing under %s",
			filepath.Join(s.liveDir, domain),
		)
	}

	if err := s.VerifyBundle(domain, bundle); err != nil {
		return entities.CertificateBundle{}, err
	}

	s.logger.Info("certificate obtained", zap.String("domain", domain))

	return bundle, nil
}

// VerifyBundle parses the leaf certificate and checks it actually
// covers the domain and has not expired. The private key is only
// existence-checked, it never needs to be read.
func (s Service) VerifyBundle(domain string, bundle entities.CertificateBundle) error {
	data, err := os.ReadFile(bundle.FullchainPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", bundle.FullchainPath, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return fmt.Errorf("%w: %s", errNoCertificate, bundle.FullchainPath)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse certificate %s: %w", bundle.FullchainPath, err)
	}

	if err := cert.VerifyHostname(domain); err != nil {
		return fmt.Errorf("certificate does not cover %q: %w", domain, err)
	}
	if time.Now().After(cert.NotAfter) {
		return fmt.Errorf("certificate for %q expired at %s", domain, cert.NotAfter)
	}

	return nil
}
