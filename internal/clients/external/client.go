// Package external wraps the D&D 5e SRD API as an equipment catalog
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-combat/internal/clients/external Client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// EquipmentKind tells weapons, armor and other gear apart
type EquipmentKind string

// Equipment kinds
const (
	KindWeapon EquipmentKind = "weapon"
	KindArmor  EquipmentKind = "armor"
	KindGear   EquipmentKind = "gear"
)

// EquipmentData is the part of a catalog entry combat cares about
type EquipmentData struct {
	Key        string
	Name       string
	Kind       EquipmentKind
	DamageDice string // weapons only
	ArmorClass int    // armor only, base AC
}

// Client defines the interface for catalog lookups
type Client interface {
	// GetEquipment fetches an entry by key, e.g. "longsword" or "chain-mail"
	GetEquipment(ctx context.Context, key string) (*EquipmentData, error)
}

// equipmentSource is the slice of the dnd5e-api client this package uses
type equipmentSource interface {
	GetEquipment(key string) (dnd5e.EquipmentInterface, error)
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.HTTPTimeout < 0 || cfg.CacheTTL < 0 {
		return errors.InvalidArgument("timeouts must not be negative")
	}
	return nil
}

type client struct {
	source equipmentSource
}

// New creates a catalog client backed by the cached dnd5e-api client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return &client{
		source: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL),
	}, nil
}

func (c *client) GetEquipment(_ context.Context, key string) (*EquipmentData, error) {
	apiKey := toAPIKey(key)
	if apiKey == "" {
		return nil, errors.InvalidArgument("equipment key is required")
	}

	slog.Debug("Looking up equipment", "key", apiKey)
	item, err := c.source.GetEquipment(apiKey)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get equipment "+apiKey)
	}
	if item == nil {
		return nil, errors.NotFoundf("equipment %s not found", apiKey)
	}

	return convertEquipment(item), nil
}

func convertEquipment(item dnd5e.EquipmentInterface) *EquipmentData {
	switch eq := item.(type) {
	case *entities.Weapon:
		data := &EquipmentData{Key: eq.Key, Name: eq.Name, Kind: KindWeapon}
		if eq.Damage != nil {
			data.DamageDice = strings.ToLower(eq.Damage.DamageDice)
		}
		return data
	case *entities.Armor:
		data := &EquipmentData{Key: eq.Key, Name: eq.Name, Kind: KindArmor}
		if eq.ArmorClass != nil {
			data.ArmorClass = eq.ArmorClass.Base
		}
		return data
	case *entities.Equipment:
		return &EquipmentData{Key: eq.Key, Name: eq.Name, Kind: KindGear}
	default:
		return &EquipmentData{Kind: KindGear}
	}
}

// toAPIKey turns "Chain Mail" or "chain_mail" into "chain-mail"
func toAPIKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	return strings.Trim(key, "-")
}
