// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// SealedFileStore persists the bearer credential in a file encrypted with
// XChaCha20-Poly1305.
//
// # Key Ownership
//
// The 32-byte key is supplied by the caller (typically derived from the
// platform keystore by the host application). The store never writes the key
// to disk; losing the key simply means the traveler signs in again.
type SealedFileStore struct {
	path string
	aead cipher.AEAD
	mu   sync.Mutex
}

// NewSealedFileStore constructs a [*SealedFileStore].
//
// # Parameters
//   - path: Destination file for the sealed credential.
//   - key: Exactly [chacha20poly1305.KeySize] (32) bytes.
func NewSealedFileStore(path string, key []byte) (*SealedFileStore, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("session: invalid seal key: %w", err)
	}
	return &SealedFileStore{path: path, aead: aead}, nil
}

// Load reads and opens the sealed credential. A missing file yields ("", nil).
func (store *SealedFileStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read sealed credential: %w", err)
	}

	if len(data) < chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("session: sealed credential is truncated")
	}

	nonce, sealed := data[:chacha20poly1305.NonceSizeX], data[chacha20poly1305.NonceSizeX:]
	plaintext, err := store.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("session: cannot open sealed credential: %w", err)
	}

	return string(plaintext), nil
}

// Save seals and writes the credential with a fresh random nonce.
func (store *SealedFileStore) Save(_ context.Context, credential string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("session: create credential dir: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("session: generate nonce: %w", err)
	}

	sealed := store.aead.Seal(nil, nonce, []byte(credential), nil)

	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, append(nonce, sealed...), 0o600); err != nil {
		return fmt.Errorf("session: write sealed credential: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		return fmt.Errorf("session: replace sealed credential: %w", err)
	}

	return nil
}

// Delete removes the sealed file. Deleting an absent file is a no-op.
func (store *SealedFileStore) Delete(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	err := os.Remove(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: delete sealed credential: %w", err)
	}
	return nil
}
