// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// credentialFile is the on-disk JSON shape of the persisted credential.
// The single "token" key mirrors the key-value contract of the original
// device storage.
type credentialFile struct {
	Token string `json:"token"`
}

// FileStore persists the bearer credential in a JSON file on the device.
//
// # Security
//
// The file is written with 0600 permissions but the token itself is stored
// in plain text. Installs that need at-rest encryption wrap this concern
// with [SealedFileStore] instead.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore constructs a [*FileStore] backed by the given file path.
// Parent directories are created on the first Save, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted credential. A missing file yields ("", nil).
func (store *FileStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read credential file: %w", err)
	}

	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("session: corrupt credential file: %w", err)
	}

	return file.Token, nil
}

// Save writes the credential, replacing any previous value.
//
// The write goes through a temp file + rename so a crash mid-write can never
// leave a truncated credential behind.
func (store *FileStore) Save(_ context.Context, credential string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("session: create credential dir: %w", err)
	}

	data, err := json.Marshal(credentialFile{Token: credential})
	if err != nil {
		return fmt.Errorf("session: encode credential: %w", err)
	}

	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("session: write credential file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		return fmt.Errorf("session: replace credential file: %w", err)
	}

	return nil
}

// Delete removes the credential file. Deleting an absent file is a no-op.
func (store *FileStore) Delete(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	err := os.Remove(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: delete credential file: %w", err)
	}
	return nil
}
