package entities

// CertificateBundle points at the certificate and key the ACME client
// produced for a single domain. The orchestrator never parses the key,
// it only hands both paths to the reverse proxy configuration.
type CertificateBundle struct {
	FullchainPath  string
	PrivateKeyPath string
}

// Summary is what the orchestrator reports to the operator after a
// successful run. It must never carry secrets.
type Summary struct {
	Domain       string
	PanelURL     string
	TLSPort      int
	BackendPort  int
	VhostPath    string
	ManifestPath string
	CertReused   bool
}
