// Package compose renders the panel's deployment manifest and drives
// the container stack through the docker compose plugin.
package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xui-ops/xui-provision/internal/system"
)

const (
	manifestName = "docker-compose.yml"
	serviceName  = "3x-ui"

	// Relative to the work dir; mounted into the container.
	dbDir   = "db"
	certDir = "cert"
)

type (
	// File is the rendered docker-compose document.
	File struct {
		Services map[string]Container `yaml:"services"`
	}

	// Container declares the single panel service. Field order here is
	// the field order in the rendered manifest, keep it stable: the
	// manifest must be byte-identical across runs.
	Container struct {
		Image       string            `yaml:"image"`
		Hostname    string            `yaml:"hostname"`
		Volumes     []string          `yaml:"volumes"`
		Environment map[string]string `yaml:"environment"`
		Tty         bool              `yaml:"tty"`
		NetworkMode string            `yaml:"network_mode"`
		Restart     string            `yaml:"restart"`
	}
)

// Service renders the manifest into the work dir and launches the stack.
type Service struct {
	runner  system.Runner
	logger  *zap.Logger
	workDir string
	image   string
}

// New returns new Service writing into workDir.
func New(runner system.Runner, logger *zap.Logger, workDir, image string) Service {
	return Service{
		runner:  runner,
		logger:  logger,
		workDir: workDir,
		image:   image,
	}
}

// ManifestPath returns where the manifest is written.
func (s Service) ManifestPath() string {
	return filepath.Join(s.workDir, manifestName)
}

// WriteManifest renders the deployment manifest and creates the two
// persistent volume directories next to it. Rendering is struct-driven,
// so re-running with the same domain regenerates identical bytes.
func (s Service) WriteManifest(domain string) (string, error) {
	for _, dir := range []string{s.workDir, filepath.Join(s.workDir, dbDir), filepath.Join(s.workDir, certDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	manifest := File{
		Services: map[string]Container{
			serviceName: {
				Image:    s.image,
				Hostname: domain,
				Volumes: []string{
					"./" + dbDir + ":/etc/x-ui/",
					"./" + certDir + ":/root/cert/",
					"/etc/letsencrypt:/etc/letsencrypt:ro",
				},
				Environment: map[string]string{
					"XUI_ENABLE_FAIL2BAN": "true",
				},
				Tty:         true,
				NetworkMode: "host",
				Restart:     "unless-stopped",
			},
		},
	}

	rendered, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to render manifest: %w", err)
	}

	path := s.ManifestPath()
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	s.logger.Info("manifest written", zap.String("path", path), zap.String("image", s.image))

	return path, nil
}

// Launch pulls the panel image and starts (or upgrades in place) the
// stack in detached mode.
func (s Service) Launch(ctx context.Context) error {
	manifest := s.ManifestPath()

	if err := s.runner.Run(ctx, "docker", "compose", "-f", manifest, "pull"); err != nil {
		return fmt.Errorf("failed to pull panel image: %w", err)
	}
	if err := s.runner.Run(ctx, "docker", "compose", "-f", manifest, "up", "-d", "--remove-orphans"); err != nil {
		return fmt.Errorf("failed to start panel stack: %w", err)
	}

	s.logger.Info("panel stack started", zap.String("manifest", manifest))

	return nil
}
