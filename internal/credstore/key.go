package credstore

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const masterKeySize = 32

// loadOrCreateMasterKey reads the machine-local master key from path,
// generating a fresh one with 0600 permissions on first use.
func loadOrCreateMasterKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != masterKeySize {
			return nil, fmt.Errorf("key file %s: expected %d bytes, got %d", path, masterKeySize, len(key))
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key = make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}

// deriveSealKey derives the AEAD key from the master key using HKDF-SHA256.
func deriveSealKey(master []byte) ([]byte, error) {
	h := hkdf.New(sha256.New, master, nil, []byte("skywarn-credstore-v1"))
	out := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}
