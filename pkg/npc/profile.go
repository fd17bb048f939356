package npc

import (
	"fmt"
	"regexp"
)

// TraitGossiper is the capability token that grants an NPC access to the
// shared gossip ledger. It is a trait check, not a role check: any profile
// carrying the token qualifies.
const TraitGossiper = "Gossiper"

// Profile is the static authored identity of an NPC. Profiles are loaded
// fresh on every interaction and are never mutated by the engine.
type Profile struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Role         string   `json:"role" yaml:"role"`
	Personality  string   `json:"personality" yaml:"personality"`
	Goals        []string `json:"goals" yaml:"goals"`
	Traits       []string `json:"traits" yaml:"traits"`
	Knowledge    []string `json:"knowledge" yaml:"knowledge"`
	GreetingSeed string   `json:"greeting_seed,omitempty" yaml:"greeting_seed,omitempty"`
}

// Placeholder returns the synthetic profile used when an NPC's authored
// profile is absent or unreadable. The interaction pipeline must never fail
// solely because a profile could not be loaded.
func Placeholder(id string) *Profile {
	return &Profile{
		ID:          id,
		Name:        id,
		Role:        "unknown",
		Personality: "neutral",
		Goals:       []string{},
		Traits:      []string{},
		Knowledge:   []string{},
	}
}

// HasTrait reports whether the profile carries the given capability token.
func (p *Profile) HasTrait(trait string) bool {
	for _, t := range p.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

var idPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// IsValidID reports whether id is a well-formed NPC identifier. Profile ids
// double as filenames, so anything that could escape the profile directory
// is rejected.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Validate checks an authored profile for the fields the prompt assembler
// depends on. Used by cmd/validate before profiles are shipped.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	if !IsValidID(p.ID) {
		return fmt.Errorf("profile id %q must be lowercase alphanumeric with - or _", p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("profile %s: name is required", p.ID)
	}
	if p.Role == "" {
		return fmt.Errorf("profile %s: role is required", p.ID)
	}
	if p.Personality == "" {
		return fmt.Errorf("profile %s: personality is required", p.ID)
	}
	return nil
}
