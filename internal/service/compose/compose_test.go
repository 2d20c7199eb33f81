package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xui-ops/xui-provision/internal/system"
)

const (
	testDomain = "example.com"
	testImage  = "ghcr.io/mhsanaei/3x-ui:latest"
)

func TestWriteManifest(t *testing.T) {
	t.Parallel()

	t.Run("check manifest shape", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		s := New(nil, zap.NewNop(), workDir, testImage)

		path, err := s.WriteManifest(testDomain)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(workDir, "docker-compose.yml"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var manifest File
		require.NoError(t, yaml.Unmarshal(data, &manifest))

		service, ok := manifest.Services["3x-ui"]
		require.True(t, ok)
		require.Equal(t, testImage, service.Image)
		require.Equal(t, testDomain, service.Hostname)
		require.Equal(t, "host", service.NetworkMode)
		require.Equal(t, "unless-stopped", service.Restart)
		require.True(t, service.Tty)
		require.Equal(t, "true", service.Environment["XUI_ENABLE_FAIL2BAN"])
		require.Equal(t, []string{
			"./db:/etc/x-ui/",
			"./cert:/root/cert/",
			"/etc/letsencrypt:/etc/letsencrypt:ro",
		}, service.Volumes)
	})

	t.Run("check volume directories created", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		s := New(nil, zap.NewNop(), workDir, testImage)

		_, err := s.WriteManifest(testDomain)
		require.NoError(t, err)
		require.DirExists(t, filepath.Join(workDir, "db"))
		require.DirExists(t, filepath.Join(workDir, "cert"))
	})

	t.Run("check rendering is deterministic", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		s := New(nil, zap.NewNop(), workDir, testImage)

		path, err := s.WriteManifest(testDomain)
		require.NoError(t, err)
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = s.WriteManifest(testDomain)
		require.NoError(t, err)
		second, err := os.ReadFile(path)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})
}

func TestLaunch(t *testing.T) {
	t.Parallel()

	t.Run("check pull then up", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		workDir := t.TempDir()
		s := New(runner, zap.NewNop(), workDir, testImage)
		manifest := s.ManifestPath()

		pull := runner.EXPECT().Run(gomock.Any(), "docker", "compose", "-f", manifest, "pull").Return(nil)
		up := runner.EXPECT().Run(gomock.Any(), "docker", "compose", "-f", manifest, "up", "-d", "--remove-orphans").Return(nil)
		gomock.InOrder(pull, up)

		require.NoError(t, s.Launch(context.Background()))
	})

	t.Run("check pull failure is fatal", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)
		s := New(runner, zap.NewNop(), t.TempDir(), testImage)

		runner.EXPECT().Run(gomock.Any(), "docker", "compose", "-f", s.ManifestPath(), "pull").
			Return(context.DeadlineExceeded)

		require.Error(t, s.Launch(context.Background()))
	})
}
