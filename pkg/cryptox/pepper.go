package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the pepper from file, creating the file with a fresh
// random pepper when it does not exist yet. It must run before any password
// is hashed, otherwise an in-memory pepper is generated and hashes will not
// survive a restart.
func LoadPepper(file string) error {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		SetPepper(strings.TrimSpace(string(data)))
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	p, err := newPepper()
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, []byte(p), 0o600); err != nil {
		return err
	}

	SetPepper(p)
	return nil
}

// SetPepper replaces the process pepper.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

func currentPepper() string {
	pepperMu.RLock()
	p := pepper
	pepperMu.RUnlock()
	if p != "" {
		return p
	}

	pepperMu.Lock()
	defer pepperMu.Unlock()
	if pepper == "" {
		generated, err := newPepper()
		if err != nil {
			panic("cryptox: failed to generate pepper: " + err.Error())
		}
		pepper = generated
	}
	return pepper
}

func newPepper() (string, error) {
	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
