// Package pkgmgr ensures the host packages the provisioning run depends
// on are present, installing only what is missing.
package pkgmgr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/system"
)

// requirement maps a binary we probe for to the apt package providing it.
type requirement struct {
	binary  string
	pkgName string
}

var requirements = []requirement{
	{binary: "nginx", pkgName: "nginx"},
	{binary: "certbot", pkgName: "certbot"},
	{binary: "docker", pkgName: "docker.io"},
}

// composePlugin has no binary of its own, it is probed through docker itself.
const composePlugin = "docker-compose-plugin"

// Service installs missing host dependencies via apt.
type Service struct {
	runner system.Runner
	logger *zap.Logger
}

// New returns new Service ready to use.
func New(runner system.Runner, logger *zap.Logger) Service {
	return Service{
		runner: runner,
		logger: logger,
	}
}

// EnsureInstalled checks every required tool and installs the missing
// ones in a single apt transaction. A host that already has everything
// is left untouched.
func (s Service) EnsureInstalled(ctx context.Context) error {
	missing := s.missingPackages(ctx)
	if len(missing) == 0 {
		s.logger.Info("all dependencies already installed")
		return nil
	}

	s.logger.Info("installing missing dependencies", zap.Strings("packages", missing))

	if err := s.runner.Run(ctx, "apt-get", "update", "-q"); err != nil {
		return fmt.Errorf("failed to update package index: %w", err)
	}

	args := append([]string{"install", "-y", "-q"}, missing...)
	if err := s.runner.Run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("failed to install packages %v: %w", missing, err)
	}

	return nil
}

func (s Service) missingPackages(ctx context.Context) []string {
	var missing []string
	dockerPresent := true

	for _, req := range requirements {
		if _, err := s.runner.LookPath(req.binary); err != nil {
			if req.binary == "docker" {
				dockerPresent = false
			}
			missing = append(missing, req.pkgName)
			continue
		}
		s.logger.Debug("dependency present", zap.String("binary", req.binary))
	}

	// The compose plugin ships separately from the engine. When docker
	// itself is absent the probe below cannot run, install both.
	if !dockerPresent {
		missing = append(missing, composePlugin)
		return missing
	}

	if err := s.runner.Run(ctx, "docker", "compose", "version"); err != nil {
		missing = append(missing, composePlugin)
	}

	return missing
}
