package filestore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-docadmin/session/storage"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"gopkg.in/yaml.v3"
)

const fileVersion = 1

var _ storage.Repo = (*Store)(nil)

// ErrWrongKey is returned when an encrypted session file cannot be opened with the configured key
var ErrWrongKey = errors.New("session file cannot be decrypted with the configured key")

// document is the on-disk YAML layout. Either Values (plaintext) or the
// Salt/Nonce/Ciphertext triple (encrypted) is populated.
type document struct {
	Version    int               `yaml:"version"`
	Encrypted  bool              `yaml:"encrypted"`
	Values     map[string]string `yaml:"values,omitempty"`
	Salt       string            `yaml:"salt,omitempty"`
	Nonce      string            `yaml:"nonce,omitempty"`
	Ciphertext string            `yaml:"ciphertext,omitempty"`
}

// Store keeps the session mirror in a single YAML file, optionally sealed
// with XChaCha20-Poly1305 under an Argon2id key derived from a passphrase.
type Store struct {
	path       string
	passphrase []byte
	mu         sync.Mutex
}

func New(path, passphrase string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session folder: %w", err)
	}
	s := &Store{path: path}
	if passphrase != "" {
		s.passphrase = []byte(passphrase)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.read()
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}
	return s.write(current)
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(current, k)
	}
	return s.write(current)
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if !doc.Encrypted {
		if doc.Values == nil {
			doc.Values = make(map[string]string)
		}
		return doc.Values, nil
	}
	if s.passphrase == nil {
		return nil, ErrWrongKey
	}
	return s.open(doc)
}

func (s *Store) write(values map[string]string) error {
	doc := document{Version: fileVersion, Values: values}
	if s.passphrase != nil {
		sealed, err := s.seal(values)
		if err != nil {
			return err
		}
		doc = sealed
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *Store) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, 1, 64*1024, 4, chacha20poly1305.KeySize)
}

func (s *Store) seal(values map[string]string) (document, error) {
	plain, err := yaml.Marshal(values)
	if err != nil {
		return document{}, fmt.Errorf("failed to encode session values: %w", err)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return document{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return document{}, fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return document{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return document{
		Version:    fileVersion,
		Encrypted:  true,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plain, nil)),
	}, nil
}

func (s *Store) open(doc document) (map[string]string, error) {
	salt, err := base64.StdEncoding.DecodeString(doc.Salt)
	if err != nil {
		return nil, fmt.Errorf("invalid session file salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(doc.Nonce)
	if err != nil {
		return nil, fmt.Errorf("invalid session file nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(doc.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("invalid session file ciphertext: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("invalid session file nonce length %d", len(nonce))
	}
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongKey
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(plain, &values); err != nil {
		return nil, fmt.Errorf("failed to decode session values: %w", err)
	}
	return values, nil
}
