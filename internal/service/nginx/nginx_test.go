package nginx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/entities"
	"github.com/xui-ops/xui-provision/internal/system"
)

const testDomain = "example.com"

func newTestService(t *testing.T, runner system.Runner) Service {
	t.Helper()

	base := t.TempDir()
	available := filepath.Join(base, "sites-available")
	enabled := filepath.Join(base, "sites-enabled")
	require.NoError(t, os.MkdirAll(available, 0o755))
	require.NoError(t, os.MkdirAll(enabled, 0o755))

	return NewWithDirs(runner, zap.NewNop(), available, enabled, filepath.Join(base, "webroot"))
}

func expectReload(runner *system.MockRunner) {
	runner.EXPECT().Run(gomock.Any(), "nginx", "-t").Return(nil)
	runner.EXPECT().Run(gomock.Any(), "systemctl", "reload", "nginx").Return(nil)
}

func testBundle() entities.CertificateBundle {
	return entities.CertificateBundle{
		FullchainPath:  "/etc/letsencrypt/live/" + testDomain + "/fullchain.pem",
		PrivateKeyPath: "/etc/letsencrypt/live/" + testDomain + "/privkey.pem",
	}
}

func TestPrepareChallenge(t *testing.T) {
	t.Parallel()

	t.Run("check bootstrap vhost is written and enabled", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)

		runner.EXPECT().Run(gomock.Any(), "chown", "www-data:www-data", s.Webroot()).Return(nil)
		expectReload(runner)

		require.NoError(t, s.PrepareChallenge(context.Background(), testDomain))

		content, err := os.ReadFile(s.VhostPath(testDomain))
		require.NoError(t, err)
		require.Contains(t, string(content), "listen 80;")
		require.Contains(t, string(content), "server_name "+testDomain+";")
		require.Contains(t, string(content), "location /.well-known/acme-challenge/")
		require.Contains(t, string(content), "root "+s.Webroot()+";")
		require.Contains(t, string(content), "provisioning in progress")

		link, err := os.Readlink(filepath.Join(s.enabledDir, testDomain))
		require.NoError(t, err)
		require.Equal(t, s.VhostPath(testDomain), link)

		require.DirExists(t, s.Webroot())
	})

	t.Run("check re-run tolerates existing symlink", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)

		runner.EXPECT().Run(gomock.Any(), "chown", "www-data:www-data", s.Webroot()).Return(nil).Times(2)
		runner.EXPECT().Run(gomock.Any(), "nginx", "-t").Return(nil).Times(2)
		runner.EXPECT().Run(gomock.Any(), "systemctl", "reload", "nginx").Return(nil).Times(2)

		require.NoError(t, s.PrepareChallenge(context.Background(), testDomain))
		require.NoError(t, s.PrepareChallenge(context.Background(), testDomain))
	})
}

func TestWriteTLSVhost(t *testing.T) {
	t.Parallel()

	t.Run("check default port propagates to listen and redirect", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)
		expectReload(runner)

		require.NoError(t, s.WriteTLSVhost(context.Background(), testDomain, 8443, 2053, testBundle()))

		content, err := os.ReadFile(s.VhostPath(testDomain))
		require.NoError(t, err)
		require.Contains(t, string(content), "listen 8443 ssl http2;")
		require.Contains(t, string(content), "return 301 https://example.com:8443$request_uri;")
		require.Contains(t, string(content), "proxy_pass http://127.0.0.1:2053;")
	})

	t.Run("check explicit port propagates everywhere", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)
		expectReload(runner)

		require.NoError(t, s.WriteTLSVhost(context.Background(), testDomain, 9443, 2053, testBundle()))

		content, err := os.ReadFile(s.VhostPath(testDomain))
		require.NoError(t, err)
		require.Contains(t, string(content), "listen 9443 ssl http2;")
		require.Contains(t, string(content), "listen [::]:9443 ssl http2;")
		require.Contains(t, string(content), "return 301 https://example.com:9443$request_uri;")
		require.NotContains(t, string(content), "8443")
	})

	t.Run("check proxy headers and upgrade support", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)
		expectReload(runner)

		bundle := testBundle()
		require.NoError(t, s.WriteTLSVhost(context.Background(), testDomain, 8443, 2053, bundle))

		content, err := os.ReadFile(s.VhostPath(testDomain))
		require.NoError(t, err)
		for _, directive := range []string{
			"ssl_certificate " + bundle.FullchainPath + ";",
			"ssl_certificate_key " + bundle.PrivateKeyPath + ";",
			"ssl_protocols TLSv1.2 TLSv1.3;",
			"proxy_set_header Host $host;",
			"proxy_set_header X-Real-IP $remote_addr;",
			"proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;",
			"proxy_set_header X-Forwarded-Proto $scheme;",
			"proxy_set_header Upgrade $http_upgrade;",
			`proxy_set_header Connection "upgrade";`,
			"proxy_set_header Range $http_range;",
			"proxy_http_version 1.1;",
		} {
			require.Contains(t, string(content), directive)
		}
	})

	t.Run("check final config supersedes bootstrap in place", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)

		runner.EXPECT().Run(gomock.Any(), "chown", "www-data:www-data", s.Webroot()).Return(nil)
		runner.EXPECT().Run(gomock.Any(), "nginx", "-t").Return(nil).Times(2)
		runner.EXPECT().Run(gomock.Any(), "systemctl", "reload", "nginx").Return(nil).Times(2)

		require.NoError(t, s.PrepareChallenge(context.Background(), testDomain))
		require.NoError(t, s.WriteTLSVhost(context.Background(), testDomain, 8443, 2053, testBundle()))

		// Exactly one config file for the domain, and it is the TLS one.
		entries, err := os.ReadDir(s.availableDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		content, err := os.ReadFile(s.VhostPath(testDomain))
		require.NoError(t, err)
		require.NotContains(t, string(content), "provisioning in progress")
		require.Contains(t, string(content), "ssl_certificate")
	})

	t.Run("check validation failure skips reload", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := newTestService(t, runner)

		runner.EXPECT().Run(gomock.Any(), "nginx", "-t").Return(errors.New("syntax error"))

		err := s.WriteTLSVhost(context.Background(), testDomain, 8443, 2053, testBundle())
		require.Error(t, err)
		require.Contains(t, err.Error(), "validation failed")
	})
}
