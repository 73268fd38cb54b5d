// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources loads catalog URL overrides from a YAML file. Catalog
// sites restructure between editions; the overrides file lets a run point
// a campus at a new URL without a rebuild.
//
// The file maps campus keys to URLs:
//
//	manoa: https://catalog.manoa.hawaii.edu/archive/2025/courses
//	maui: https://maui.hawaii.edu/catalog/2025-2026.pdf
package sources

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Load reads the overrides file. A missing file is not an error; Load
// returns an empty map so the built-in catalog URLs apply.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading sources file %s: %w", path, err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}

	for key := range overrides {
		if _, err := types.InstitutionByKey(key); err != nil {
			return nil, fmt.Errorf("sources file %s: %w", path, err)
		}
	}
	return overrides, nil
}

// Apply returns the registry institutions with overridden catalog URLs.
// Empty override values are ignored.
func Apply(overrides map[string]string) []types.Institution {
	insts := types.Institutions()
	for i, inst := range insts {
		if url, ok := overrides[inst.Key]; ok && url != "" {
			insts[i].CatalogURL = url
		}
	}
	return insts
}

// Resolve looks up one campus with overrides applied.
func Resolve(key string, overrides map[string]string) (types.Institution, error) {
	inst, err := types.InstitutionByKey(key)
	if err != nil {
		return types.Institution{}, err
	}
	if url, ok := overrides[key]; ok && url != "" {
		inst.CatalogURL = url
	}
	return inst, nil
}
