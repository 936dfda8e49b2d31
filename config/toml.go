package config

import (
	"bytes"
	"text/template"
)

const SolanaConfigTemplate = `[solana]
chain = "{{ .Solana.Chain }}"
rpc_url = "{{ .Solana.RpcUrl }}"
timeout = {{ .Solana.Timeout }}
use_system_ca = {{ .Solana.UseSystemCa }}
ca_file = "{{ .Solana.CaFile }}"

[demo]
interval = {{ .Demo.Interval }}
lamports = {{ .Demo.Lamports }}
`

// Render writes cfg in TOML form. The mnemonic is never rendered; it is read from the environment.
func Render(cfg Config) (string, error) {
	tmpl, err := template.New("config").Parse(SolanaConfigTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", err
	}

	return buf.String(), nil
}
