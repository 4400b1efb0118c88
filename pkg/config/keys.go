package config

import (
	"errors"

	"github.com/charmbracelet/keygen"
)

// ErrEmptySSHKeyPath is returned when the SSH key path is empty.
var ErrEmptySSHKeyPath = errors.New("empty SSH key path")

// KeyPair returns the server's SSH host key pair, creating and writing it
// to KeyPath when it doesn't exist yet.
func KeyPair(cfg *Config) (*keygen.SSHKeyPair, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SSH.KeyPath == "" {
		return nil, ErrEmptySSHKeyPath
	}

	return keygen.New(cfg.SSH.KeyPath, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
}
