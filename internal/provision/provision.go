// Package provision sequences the provisioning steps. Each step's
// success is a precondition for the next, so execution is strictly
// sequential and the first failure aborts the run.
package provision

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/config"
	"github.com/xui-ops/xui-provision/internal/entities"
)

//go:generate mockgen -source=provision.go -package=provision -destination=provision_mock.go

type (
	// Installer ensures host packages are present.
	Installer interface {
		EnsureInstalled(ctx context.Context) error
	}

	// Proxy manages the domain's reverse-proxy vhost.
	Proxy interface {
		PrepareChallenge(ctx context.Context, domain string) error
		WriteTLSVhost(ctx context.Context, domain string, tlsPort, backendPort int, bundle entities.CertificateBundle) error
		VhostPath(domain string) string
	}

	// Acquirer obtains and verifies the certificate bundle.
	Acquirer interface {
		Bundle(domain string) (entities.CertificateBundle, bool)
		Obtain(ctx context.Context, domain, email string, standalone bool) (entities.CertificateBundle, error)
		VerifyBundle(domain string, bundle entities.CertificateBundle) error
	}

	// Launcher renders the deployment manifest and starts the stack.
	Launcher interface {
		WriteManifest(domain string) (string, error)
		Launch(ctx context.Context) error
	}

	// Checker probes endpoints after launch.
	Checker interface {
		Wait(ctx context.Context, urls ...string) error
	}
)

// Orchestrator runs the whole provisioning sequence once.
type Orchestrator struct {
	cfg       *config.AppConfig
	logger    *zap.Logger
	installer Installer
	proxy     Proxy
	acquirer  Acquirer
	launcher  Launcher
	checker   Checker
}

// New returns new Orchestrator ready to run.
func New(
	cfg *config.AppConfig,
	logger *zap.Logger,
	installer Installer,
	proxy Proxy,
	acquirer Acquirer,
	launcher Launcher,
	checker Checker,
) Orchestrator {
	return Orchestrator{
		cfg:       cfg,
		logger:    logger,
		installer: installer,
		proxy:     proxy,
		acquirer:  acquirer,
		launcher:  launcher,
		checker:   checker,
	}
}

// Run executes the sequence and returns the final summary. Re-running
// after a failure is safe: completed steps are idempotent and already
// acquired certificates are reused unless the run asks for reissue.
func (o Orchestrator) Run(ctx context.Context) (*entities.Summary, error) {
	o.logger.Info("installing dependencies")
	if err := o.installer.EnsureInstalled(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDependencyInstall, err)
	}

	bundle, reused, err := o.ensureCertificate(ctx)
	if err != nil {
		return nil, err
	}

	o.logger.Info("writing tls vhost", zap.Int("tls_port", o.cfg.TLSPort))
	if err := o.proxy.WriteTLSVhost(ctx, o.cfg.Domain, o.cfg.TLSPort, o.cfg.BackendPort, bundle); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrVhostWrite, err)
	}

	o.logger.Info("writing deployment manifest", zap.String("workdir", o.cfg.WorkDir))
	manifestPath, err := o.launcher.WriteManifest(o.cfg.Domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestOrLaunch, err)
	}

	o.logger.Info("launching panel stack")
	if err := o.launcher.Launch(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestOrLaunch, err)
	}

	panelURL := fmt.Sprintf("https://%s:%d/", o.cfg.Domain, o.cfg.TLSPort)

	// The stack is fully configured at this point. A slow panel boot is
	// worth a warning but must not fail the run.
	if err := o.checker.Wait(ctx, panelURL, fmt.Sprintf("http://127.0.0.1:%d/", o.cfg.BackendPort)); err != nil {
		o.logger.Warn("post-launch check did not pass", zap.Error(err))
	}

	return &entities.Summary{
		Domain:       o.cfg.Domain,
		PanelURL:     panelURL,
		TLSPort:      o.cfg.TLSPort,
		BackendPort:  o.cfg.BackendPort,
		VhostPath:    o.proxy.VhostPath(o.cfg.Domain),
		ManifestPath: manifestPath,
		CertReused:   reused,
	}, nil
}

// ensureCertificate reuses a bundle already on disk when allowed and
// acquires a fresh one otherwise. A bundle that exists but fails
// verification (expired, wrong host) is re-acquired rather than trusted.
func (o Orchestrator) ensureCertificate(ctx context.Context) (entities.CertificateBundle, bool, error) {
	if bundle, ok := o.acquirer.Bundle(o.cfg.Domain); ok && !o.cfg.Reissue {
		if err := o.acquirer.VerifyBundle(o.cfg.Domain, bundle); err == nil {
			o.logger.Info("reusing existing certificate", zap.String("fullchain", bundle.FullchainPath))
			return bundle, true, nil
		}

		o.logger.Warn("existing certificate failed verification, re-acquiring")
	}

	o.logger.Info("preparing acme challenge")
	if err := o.proxy.PrepareChallenge(ctx, o.cfg.Domain); err != nil {
		return entities.CertificateBundle{}, false, fmt.Errorf("%w: %s", ErrChallengePreparation, err)
	}

	o.logger.Info("requesting certificate",
		zap.String("email", o.cfg.Email),
		zap.Bool("standalone", o.cfg.Standalone),
	)
	bundle, err := o.acquirer.Obtain(ctx, o.cfg.Domain, o.cfg.Email, o.cfg.Standalone)
	if err != nil {
		return entities.CertificateBundle{}, false, fmt.Errorf("%w: %s", ErrCertificateAcquisition, err)
	}

	return bundle, false, nil
}
