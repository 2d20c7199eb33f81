package provision

import "errors"

// Step errors. Every fatal condition aborts the whole run; the sentinel
// wrapped into the returned error tells the operator which step to fix
// before re-running.
var (
	ErrDependencyInstall      = errors.New("dependency installation failed")
	ErrChallengePreparation   = errors.New("acme challenge preparation failed")
	ErrCertificateAcquisition = errors.New("certificate acquisition failed")
	ErrVhostWrite             = errors.New("tls vhost write failed")
	ErrManifestOrLaunch       = errors.New("manifest or launch failed")
)
