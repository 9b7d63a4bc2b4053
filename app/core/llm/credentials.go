package llm

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCredential means no API key was found in the environment or dotfile.
var ErrNoCredential = errors.New("llm: api key not found")

// ResolveAPIKey checks the environment first, then a KEY=value line in
// the named dotfile under the user's home directory.
func ResolveAPIKey(envVar, dotfile string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoCredential
	}
	if v, ok := keyFromDotfile(filepath.Join(home, dotfile), envVar); ok {
		return v, nil
	}
	return "", ErrNoCredential
}

func keyFromDotfile(path, envVar string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	prefix := envVar + "="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.Trim(strings.TrimPrefix(line, prefix), `"'`)
		if value != "" {
			return value, true
		}
	}
	return "", false
}
