// Package vault stores per-channel password pairs in a single document
// sealed with the authenticated blob format.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/exchange"
)

// formatVersion is written into every sealed document.
const formatVersion = 1

var (
	// ErrLocked is returned when the vault cannot be opened with the
	// given master key, or the document was modified.
	ErrLocked = errors.New("vault locked")

	// ErrCorrupt is returned when the decrypted document is not a vault.
	ErrCorrupt = errors.New("vault corrupt")
)

type document struct {
	Version  int                              `json:"version"`
	Channels map[string]exchange.PasswordPair `json:"channels"`
}

// Vault is an unlocked set of channel passwords. It is safe for
// concurrent use.
type Vault struct {
	mu       sync.RWMutex
	channels map[string]exchange.PasswordPair
}

// New returns an empty vault.
func New() *Vault {
	return &Vault{channels: make(map[string]exchange.PasswordPair)}
}

// Set stores the passwords for a channel, replacing any previous pair.
func (v *Vault) Set(channel string, pair exchange.PasswordPair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.channels[channel] = pair
}

// Get returns the passwords for a channel.
func (v *Vault) Get(channel string) (exchange.PasswordPair, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	pair, ok := v.channels[channel]
	return pair, ok
}

// Delete removes a channel.
func (v *Vault) Delete(channel string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.channels, channel)
}

// Channels returns the channel names in sorted order.
func (v *Vault) Channels() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	names := make([]string, 0, len(v.channels))
	for name := range v.channels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Seal encrypts the vault under masterKey.
func (v *Vault) Seal(masterKey []byte) (string, error) {
	v.mu.RLock()
	doc, err := json.Marshal(document{Version: formatVersion, Channels: v.channels})
	v.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("failed to encode vault: %w", err)
	}
	return crypto.EncryptBlob(doc, masterKey)
}

// Open decrypts a sealed vault.
func Open(sealed string, masterKey []byte) (*Vault, error) {
	doc, err := crypto.DecryptBlob(sealed, masterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocked, err)
	}

	var d document
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if d.Version != formatVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrCorrupt, d.Version)
	}

	v := New()
	for name, pair := range d.Channels {
		v.channels[name] = pair
	}
	return v, nil
}

// Load reads and opens the vault at path. A missing file yields an empty
// vault.
func Load(path string, masterKey []byte) (*Vault, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return Open(string(data), masterKey)
}

// Save seals the vault and writes it to path with mode 0600, replacing
// the file atomically.
func (v *Vault) Save(path string, masterKey []byte) error {
	sealed, err := v.Seal(masterKey)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".vault-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(sealed); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
