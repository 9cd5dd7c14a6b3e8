package main

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Roster is an encounter file: two sides and the scene they fight in
type Roster struct {
	Story       string                     `yaml:"story"`
	Party       []entities.CombatantRecord `yaml:"party"`
	Adversaries []entities.CombatantRecord `yaml:"adversaries"`
}

// LoadRoster reads and parses a roster file
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read roster")
	}
	return ParseRoster(data)
}

// ParseRoster decodes a YAML roster. Unknown fields are rejected.
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse roster")
	}

	vb := errors.NewValidationBuilder()
	if len(r.Party) == 0 {
		vb.Field("party", "needs at least one member")
	}
	if len(r.Adversaries) == 0 {
		vb.Field("adversaries", "needs at least one member")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return &r, nil
}
