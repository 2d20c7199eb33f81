package nginx

import "text/template"

// bootstrapTemplate is the ACME-only vhost: it serves the HTTP-01
// challenge path from the webroot and a fixed placeholder everywhere
// else. It is replaced by tlsTemplate once the certificate exists.
var bootstrapTemplate = template.Must(template.New("bootstrap").Parse(`server {
    listen 80;
    listen [::]:80;
    server_name {{ .Domain }};

    location /.well-known/acme-challenge/ {
        root {{ .Webroot }};
    }

    location / {
        default_type text/plain;
        return 200 'provisioning in progress';
    }
}
`))

// tlsTemplate is the final vhost: port 80 keeps answering ACME renewals
// and redirects everything else to the TLS listener, which terminates
// TLS and proxies to the panel on the loopback backend port.
var tlsTemplate = template.Must(template.New("tls").Parse(`server {
    listen 80;
    listen [::]:80;
    server_name {{ .Domain }};

    location /.well-known/acme-challenge/ {
        root {{ .Webroot }};
    }

    location / {
        return 301 https://{{ .Domain }}:{{ .TLSPort }}$request_uri;
    }
}

server {
    listen {{ .TLSPort }} ssl http2;
    listen [::]:{{ .TLSPort }} ssl http2;
    server_name {{ .Domain }};

    ssl_certificate {{ .Fullchain }};
    ssl_certificate_key {{ .PrivateKey }};
    ssl_protocols TLSv1.2 TLSv1.3;
    ssl_ciphers ECDHE-ECDSA-AES128-GCM-SHA256:ECDHE-RSA-AES128-GCM-SHA256:ECDHE-ECDSA-AES256-GCM-SHA384:ECDHE-RSA-AES256-GCM-SHA384:ECDHE-ECDSA-CHACHA20-POLY1305:ECDHE-RSA-CHACHA20-POLY1305;
    ssl_prefer_server_ciphers off;

    location / {
        proxy_pass http://127.0.0.1:{{ .BackendPort }};
        proxy_http_version 1.1;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";
        proxy_set_header Range $http_range;
        proxy_set_header If-Range $http_if_range;
        proxy_redirect off;
    }
}
`))

type bootstrapParams struct {
	Domain  string
	Webroot string
}

type tlsParams struct {
	Domain      string
	Webroot     string
	TLSPort     int
	BackendPort int
	Fullchain   string
	PrivateKey  string
}
