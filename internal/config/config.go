package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/jessevdk/go-flags"

	"github.com/xui-ops/xui-provision/internal/environment"
)

type (
	// AppConfig contains full configuration of a provisioning run.
	// It is resolved once at process start and never mutated afterwards.
	AppConfig struct {
		Domain      string `short:"d" long:"domain" env:"DOMAIN" description:"Domain the panel will be served on"`
		Email       string `short:"e" long:"email" env:"EMAIL" description:"ACME contact email; defaults to admin@<domain>"`
		TLSPort     int    `short:"p" long:"tls_port" env:"TLS_PORT" description:"Public HTTPS port the proxy listens on" default:"8443"`
		BackendPort int    `long:"backend_port" env:"BACKEND_PORT" description:"Loopback port the panel listens on" default:"2053"`
		WorkDir     string `long:"workdir" env:"WORKDIR" description:"Directory for the compose manifest and panel volumes" default:"/opt/3x-ui"`
		Image       string `long:"image" env:"IMAGE" description:"Panel container image" default:"ghcr.io/mhsanaei/3x-ui:latest"`
		Standalone  bool   `long:"standalone" env:"STANDALONE" description:"Answer the ACME challenge standalone, stopping nginx for the duration"`
		Reissue     bool   `long:"reissue" env:"REISSUE" description:"Request a new certificate even when one already exists"`

		Env    environment.Env `long:"env" env:"ENV" description:"Environment application is running in" default:"local"`
		Logger Logger          `group:"Logger options" namespace:"logger" env-namespace:"LOGGER"`

		Positional struct {
			Domain  string `positional-arg-name:"domain"`
			TLSPort int    `positional-arg-name:"https-port"`
		} `positional-args:"yes"`
	}

	// Logger contains logger configuration.
	Logger struct {
		Level string `long:"level" env:"LEVEL" description:"Log level to use; environment-base level is used when empty"`
	}
)

// ErrHelp is returned when --help flag is
// used and application should not launch.
var ErrHelp = errors.New("help")

// ErrMissingDomain is returned when neither the flag nor
// the positional form carries a domain.
var ErrMissingDomain = errors.New("domain is required")

// hostnameRE is a strict RFC 1123 grammar: labels of at most 63
// alphanumeric-or-hyphen characters, at least two labels. The domain is
// interpolated into generated configuration files, so anything outside
// this grammar is rejected before a single file is written.
var hostnameRE = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)+$`)

// New reads flags and envs and returns AppConfig
// that corresponds to the values read.
func New() (*AppConfig, error) {
	return NewFromArgs(os.Args[1:])
}

// NewFromArgs parses the given argument list into an AppConfig,
// applies defaults and validates the result.
func NewFromArgs(args []string) (*AppConfig, error) {
	var config AppConfig
	if _, err := flags.NewParser(&config, flags.Default).ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.resolve(); err != nil {
		return nil, err
	}

	return &config, nil
}

// resolve merges the positional form into the flag form,
// fills derived defaults and validates the request.
func (c *AppConfig) resolve() error {
	if c.Domain == "" {
		c.Domain = c.Positional.Domain
	}
	if c.Positional.TLSPort != 0 && c.TLSPort == 8443 {
		c.TLSPort = c.Positional.TLSPort
	}

	if c.Domain == "" {
		return ErrMissingDomain
	}
	if len(c.Domain) > 253 || !hostnameRE.MatchString(c.Domain) {
		return fmt.Errorf("domain %q is not a valid hostname", c.Domain)
	}

	if c.Email == "" {
		c.Email = "admin@" + c.Domain
	}

	if c.TLSPort < 1 || c.TLSPort > 65535 {
		return fmt.Errorf("tls port %d is out of range", c.TLSPort)
	}
	if c.BackendPort < 1 || c.BackendPort > 65535 {
		return fmt.Errorf("backend port %d is out of range", c.BackendPort)
	}
	if c.TLSPort == c.BackendPort {
		return fmt.Errorf("tls port and backend port collide on %d", c.TLSPort)
	}

	return nil
}
