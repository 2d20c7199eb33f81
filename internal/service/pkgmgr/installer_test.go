package pkgmgr

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xui-ops/xui-provision/internal/system"
)

var errNotFound = errors.New("executable file not found in $PATH")

func TestEnsureInstalled(t *testing.T) {
	t.Parallel()

	t.Run("check nothing installed when everything present", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)

		runner.EXPECT().LookPath("nginx").Return("/usr/sbin/nginx", nil)
		runner.EXPECT().LookPath("certbot").Return("/usr/bin/certbot", nil)
		runner.EXPECT().LookPath("docker").Return("/usr/bin/docker", nil)
		runner.EXPECT().Run(gomock.Any(), "docker", "compose", "version").Return(nil)

		s := New(runner, zap.NewNop())
		require.NoError(t, s.EnsureInstalled(context.Background()))
	})

	t.Run("check only missing package installed", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)

		runner.EXPECT().LookPath("nginx").Return("/usr/sbin/nginx", nil)
		runner.EXPECT().LookPath("certbot").Return("", errNotFound)
		runner.EXPECT().LookPath("docker").Return("/usr/bin/docker", nil)
		runner.EXPECT().Run(gomock.Any(), "docker", "compose", "version").Return(nil)
		runner.EXPECT().Run(gomock.Any(), "apt-get", "update", "-q").Return(nil)
		runner.EXPECT().Run(gomock.Any(), "apt-get", "install", "-y", "-q", "certbot").Return(nil)

		s := New(runner, zap.NewNop())
		require.NoError(t, s.EnsureInstalled(context.Background()))
	})

	t.Run("check docker absence pulls in compose plugin", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)

		runner.EXPECT().LookPath("nginx").Return("/usr/sbin/nginx", nil)
		runner.EXPECT().LookPath("certbot").Return("/usr/bin/certbot", nil)
		runner.EXPECT().LookPath("docker").Return("", errNotFound)
		runner.EXPECT().Run(gomock.Any(), "apt-get", "update", "-q").Return(nil)
		runner.EXPECT().Run(gomock.Any(), "apt-get", "install", "-y", "-q", "docker.io", "docker-compose-plugin").Return(nil)

		s := New(runner, zap.NewNop())
		require.NoError(t, s.EnsureInstalled(context.Background()))
	})

	t.Run("check apt failure is fatal", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		runner := system.NewMockRunner(ctrl)

		runner.EXPECT().LookPath("nginx").Return("", errNotFound)
		runner.EXPECT().LookPath("certbot").Return("/usr/bin/certbot", nil)
		runner.EXPECT().LookPath("docker").Return("/usr/bin/docker", nil)
		runner.EXPECT().Run(gomock.Any(), "docker", "compose", "version").Return(nil)
		runner.EXPECT().Run(gomock.Any(), "apt-get", "update", "-q").Return(errors.New("mirror down"))

		s := New(runner, zap.NewNop())
		require.Error(t, s.EnsureInstalled(context.Background()))
	})
}
