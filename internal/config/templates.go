package config

import (
	"fmt"
	"os"
	"strings"
)

// Template returns the starter TOML file for kind ("serve", "dump" or
// "ssh").
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "serve":
		return serveTemplate, nil
	case "dump":
		return dumpTemplate, nil
	case "ssh":
		return sshTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

// WriteTemplate writes the named template to path, refusing to clobber
// an existing file unless overwrite is set.
func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serveTemplate = `addr = ":9191"
payload_max = 4096
metrics_path = "/metrics"
cors_origins = ["http://localhost:3000"]
`

const dumpTemplate = `input_path = ""
payload_max = 4096
`

const sshTemplate = `host = "localhost"
port = "22"
user = "xenwire"
key_path = "~/.ssh/id_ed25519"
known_hosts_path = "~/.ssh/known_hosts"
`
