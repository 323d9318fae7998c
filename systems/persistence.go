package systems

import (
	"encoding/json"
	"log"
	"strings"

	cfg "github.com/automoto/partyroom/config"
	"github.com/quasilyte/gdata"
)

const profileItem = "profile"

// SavedProfile is the launcher state stored on disk.
type SavedProfile struct {
	PlayerName  string `json:"playerName"`
	LastAddress string `json:"lastAddress"`
}

// itemStore is the subset of *gdata.Manager used here.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

var store itemStore

// InitPersistence opens the gdata store for the launcher profile.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "partyroom",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	store = m
	return nil
}

func loadProfile() SavedProfile {
	var profile SavedProfile
	if store == nil {
		return profile
	}

	data, err := store.LoadItem(profileItem)
	if err != nil {
		log.Printf("Warning: Could not load profile: %v", err)
		return profile
	}
	if len(data) == 0 {
		return profile
	}

	if err := json.Unmarshal(data, &profile); err != nil {
		log.Printf("Warning: Could not parse saved profile: %v", err)
		return SavedProfile{}
	}
	return profile
}

func saveProfile(profile SavedProfile) error {
	if store == nil {
		return nil
	}

	data, err := json.Marshal(profile)
	if err != nil {
		log.Printf("Warning: Could not serialize profile: %v", err)
		return err
	}

	if err := store.SaveItem(profileItem, data); err != nil {
		log.Printf("Warning: Could not save profile: %v", err)
		return err
	}
	return nil
}

// NormalizePlayerName trims name and falls back to the default nickname when
// nothing is left.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return cfg.Network.DefaultName
	}
	return name
}

// LoadPlayerName returns the stored nickname, or "" when none was saved.
func LoadPlayerName() string {
	return loadProfile().PlayerName
}

// SavePlayerName stores the nickname typed on the launcher.
func SavePlayerName(name string) error {
	profile := loadProfile()
	profile.PlayerName = NormalizePlayerName(name)
	return saveProfile(profile)
}

// LoadLastAddress returns the last direct-connect address, or "".
func LoadLastAddress() string {
	return loadProfile().LastAddress
}

func SaveLastAddress(address string) error {
	profile := loadProfile()
	profile.LastAddress = strings.TrimSpace(address)
	return saveProfile(profile)
}
