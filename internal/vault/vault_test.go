package vault

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/chatseal/chatseal/internal/exchange"
)

var (
	masterKey = bytes.Repeat([]byte{0x5c}, 32)
	pair      = exchange.PasswordPair{Primary: "alpha", Secondary: "beta"}
)

func TestVault_SetGetDelete(t *testing.T) {
	v := New()
	v.Set("general", pair)
	v.Set("random", exchange.PasswordPair{Primary: "x", Secondary: "y"})

	got, ok := v.Get("general")
	if !ok || got != pair {
		t.Errorf("Get(general) = %+v, %v", got, ok)
	}
	if names := v.Channels(); !slices.Equal(names, []string{"general", "random"}) {
		t.Errorf("Channels() = %v", names)
	}

	v.Delete("general")
	if _, ok := v.Get("general"); ok {
		t.Error("channel still present after Delete")
	}
}

func TestVault_SealOpen(t *testing.T) {
	v := New()
	v.Set("general", pair)

	sealed, err := v.Seal(masterKey)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	opened, err := Open(sealed, masterKey)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got, _ := opened.Get("general"); got != pair {
		t.Errorf("Get(general) = %+v, want %+v", got, pair)
	}

	if _, err := Open(sealed, bytes.Repeat([]byte{1}, 32)); !errors.Is(err, ErrLocked) {
		t.Errorf("wrong key error = %v, want ErrLocked", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "none"), masterKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(v.Channels()) != 0 {
		t.Error("missing file should load as an empty vault")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "vault.seal")

	v := New()
	v.Set("general", pair)
	if err := v.Save(path, masterKey); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	loaded, err := Load(path, masterKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, _ := loaded.Get("general"); got != pair {
		t.Errorf("Get(general) = %+v, want %+v", got, pair)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the vault", len(entries))
	}
}
