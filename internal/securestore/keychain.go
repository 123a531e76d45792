// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	deviceSecretFile = "device.secret"
	entrySuffix      = ".bin"

	secretLen = 32
	saltLen   = 16
)

// keychainBackend stores each key as an AES-256-GCM encrypted file inside a
// dedicated directory. The encryption key is derived with Argon2id from a
// per-device random secret, so files copied off the device are unreadable
// without the secret.
type keychainBackend struct {
	dir string
	aek []byte // derived 256-bit encryption key
}

// NewKeychainBackend opens (or initializes) the encrypted keychain in dir.
// On first use it generates the device secret with 0600 permissions and
// derives the encryption key from it. The Argon2id parameters follow the
// OWASP (2024) recommendation: 1 iteration, 64 MiB memory, 4 threads.
func NewKeychainBackend(dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keychain directory: %w", err)
	}

	secret, salt, err := loadOrCreateDeviceSecret(filepath.Join(dir, deviceSecretFile))
	if err != nil {
		return nil, err
	}

	aek := argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)

	return &keychainBackend{dir: dir, aek: aek}, nil
}

func (k *keychainBackend) Get(_ context.Context, key string) (string, bool, error) {
	blob, err := os.ReadFile(k.entryPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read keychain entry: %w", err)
	}

	value, err := k.decrypt(blob)
	if err != nil {
		return "", false, fmt.Errorf("decrypt keychain entry %s: %w", key, err)
	}

	return value, true, nil
}

func (k *keychainBackend) Set(_ context.Context, key string, value string) error {
	blob, err := k.encrypt(value)
	if err != nil {
		return fmt.Errorf("encrypt keychain entry %s: %w", key, err)
	}

	if err := os.WriteFile(k.entryPath(key), blob, 0o600); err != nil {
		return fmt.Errorf("write keychain entry: %w", err)
	}

	return nil
}

func (k *keychainBackend) Delete(_ context.Context, key string) error {
	err := os.Remove(k.entryPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete keychain entry: %w", err)
	}
	return nil
}

func (k *keychainBackend) WipeAll(_ context.Context) error {
	entries, err := os.ReadDir(k.dir)
	if err != nil {
		return fmt.Errorf("list keychain directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), entrySuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(k.dir, entry.Name())); err != nil {
			return fmt.Errorf("remove keychain entry %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// entryPath hex-encodes the key so arbitrary key names cannot escape the
// keychain directory or collide with the device secret file.
func (k *keychainBackend) entryPath(key string) string {
	return filepath.Join(k.dir, hex.EncodeToString([]byte(key))+entrySuffix)
}

// encrypt seals value with AES-256-GCM. The random 12-byte nonce is
// prepended to the ciphertext: blob = nonce ‖ ciphertext.
func (k *keychainBackend) encrypt(value string) ([]byte, error) {
	block, err := aes.NewCipher(k.aek)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(value), nil)
	return append(nonce, ciphertext...), nil
}

func (k *keychainBackend) decrypt(blob []byte) (string, error) {
	block, err := aes.NewCipher(k.aek)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", ErrCiphertextTooShort
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt data: %w", err)
	}

	return string(plaintext), nil
}

// loadOrCreateDeviceSecret reads the device secret file, generating it from
// the OS CSPRNG on first run. Layout: secret (32 bytes) ‖ salt (16 bytes).
func loadOrCreateDeviceSecret(path string) (secret, salt []byte, err error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		if len(raw) != secretLen+saltLen {
			return nil, nil, ErrBadDeviceSecret
		}
		return raw[:secretLen], raw[secretLen:], nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("read device secret: %w", err)
	}

	raw = make([]byte, secretLen+saltLen)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, nil, fmt.Errorf("generate device secret: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return nil, nil, fmt.Errorf("write device secret: %w", err)
	}

	return raw[:secretLen], raw[secretLen:], nil
}
