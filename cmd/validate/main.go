// Command validate checks authored NPC profile files before they are
// shipped to a data directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/npc-engine/pkg/npc"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <profile.json|profile.yaml> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", filename)
	}

	if failed {
		os.Exit(1)
	}
}

func validateFile(filename string) error {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext != ".json" && ext != ".yaml" {
		return fmt.Errorf("profile file must have .json or .yaml extension")
	}

	id := strings.TrimSuffix(base, ext)
	if !npc.IsValidID(id) {
		return fmt.Errorf("filename %q must be a lowercase id (e.g. barkeep_mira.json)", base)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var p npc.Profile
	switch ext {
	case ".json":
		decoder := json.NewDecoder(strings.NewReader(string(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&p); err != nil {
			return fmt.Errorf("strict JSON decode failed: %w", err)
		}
	case ".yaml":
		decoder := yaml.NewDecoder(strings.NewReader(string(data)))
		decoder.KnownFields(true)
		if err := decoder.Decode(&p); err != nil {
			return fmt.Errorf("strict YAML decode failed: %w", err)
		}
	}

	if p.ID != "" && p.ID != id {
		return fmt.Errorf("profile id %q does not match filename id %q", p.ID, id)
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.Name == "" {
		p.Name = id
	}

	return p.Validate()
}
