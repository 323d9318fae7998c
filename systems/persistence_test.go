package systems

import (
	"errors"
	"testing"
)

type memStore struct {
	items   map[string][]byte
	saveErr error
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[key] = data
	return nil
}

func withStore(t *testing.T, s itemStore) {
	t.Helper()
	prev := store
	store = s
	t.Cleanup(func() { store = prev })
}

func TestPlayerNameRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		typed string
		want  string
	}{
		{"plain", "Ada", "Ada"},
		{"trimmed", "  Ada \t", "Ada"},
		{"trailing space", "Ada ", "Ada"},
		{"empty falls back", "", "Player"},
		{"blank falls back", "   ", "Player"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			withStore(t, &memStore{items: map[string][]byte{}})

			if err := SavePlayerName(c.typed); err != nil {
				t.Fatalf("save: %v", err)
			}
			if got := LoadPlayerName(); got != c.want {
				t.Fatalf("want %q, got %q", c.want, got)
			}
		})
	}
}

func TestNameAndAddressShareProfile(t *testing.T) {
	withStore(t, &memStore{items: map[string][]byte{}})

	if err := SavePlayerName("Ada"); err != nil {
		t.Fatal(err)
	}
	if err := SaveLastAddress("example.org:7373"); err != nil {
		t.Fatal(err)
	}
	if got := LoadPlayerName(); got != "Ada" {
		t.Fatalf("name overwritten: %q", got)
	}
	if got := LoadLastAddress(); got != "example.org:7373" {
		t.Fatalf("address: %q", got)
	}
}

func TestPersistenceWithoutStoreIsNoop(t *testing.T) {
	withStore(t, nil)

	if err := SavePlayerName("Ada"); err != nil {
		t.Fatalf("save without store: %v", err)
	}
	if got := LoadPlayerName(); got != "" {
		t.Fatalf("want empty name, got %q", got)
	}
}

func TestCorruptProfileLoadsEmpty(t *testing.T) {
	withStore(t, &memStore{items: map[string][]byte{profileItem: []byte("{not json")}})

	if got := LoadPlayerName(); got != "" {
		t.Fatalf("want empty name, got %q", got)
	}
}

func TestSaveErrorIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	withStore(t, &memStore{items: map[string][]byte{}, saveErr: boom})

	if err := SavePlayerName("Ada"); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}
