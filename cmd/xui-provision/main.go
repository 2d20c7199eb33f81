package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/config"
	"github.com/xui-ops/xui-provision/internal/entities"
	ll "github.com/xui-ops/xui-provision/internal/logger"
	"github.com/xui-ops/xui-provision/internal/provision"
	"github.com/xui-ops/xui-provision/internal/service/certbot"
	"github.com/xui-ops/xui-provision/internal/service/compose"
	"github.com/xui-ops/xui-provision/internal/service/health"
	"github.com/xui-ops/xui-provision/internal/service/nginx"
	"github.com/xui-ops/xui-provision/internal/service/pkgmgr"
	"github.com/xui-ops/xui-provision/internal/system"
)

//nolint:gochecknoglobals
var (
	version   = "unknown"
	buildTime = "unknown"
)

func main() {
	appConfig, err := config.New()
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("failed to read app config: %v", err)
	}

	logger, err := ll.New(version, appConfig.Env, appConfig.Logger.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	logger.Info("provisioning started",
		zap.String("domain", appConfig.Domain),
		zap.Int("tls_port", appConfig.TLSPort),
		zap.String("build_time", buildTime),
	)

	runner := system.NewExecRunner(logger)

	proxy := nginx.New(runner, logger)
	orchestrator := provision.New(
		appConfig,
		logger,
		pkgmgr.New(runner, logger),
		proxy,
		certbot.New(runner, logger, proxy.Webroot()),
		compose.New(runner, logger, appConfig.WorkDir, appConfig.Image),
		health.New(&http.Client{Timeout: 10 * time.Second}, logger),
	)

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		logger.Error("provisioning failed", zap.Error(err))
		os.Exit(1)
	}

	report(summary)
}

// report prints the final operator summary. Plain stdout on purpose:
// this is the part of the output meant for humans, not for log shippers.
func report(s *entities.Summary) {
	cert := "issued"
	if s.CertReused {
		cert = "reused existing"
	}

	fmt.Printf(`
provisioning complete

  panel:        %s
  domain:       %s
  https port:   %d
  backend port: %d (loopback)
  certificate:  %s
  vhost:        %s
  manifest:     %s

manage the stack with:
  docker compose -f %s logs -f
  docker compose -f %s down
`,
		s.PanelURL, s.Domain, s.TLSPort, s.BackendPort, cert,
		s.VhostPath, s.ManifestPath, s.ManifestPath, s.ManifestPath,
	)
}
