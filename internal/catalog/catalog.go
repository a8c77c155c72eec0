// ABOUTME: Exercise catalog loading from the embedded seed and YAML/JSON files.
// ABOUTME: Directory overlays replace seed entries by id or add new ones.
package catalog

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// FilePattern matches catalog files inside a catalog directory.
const FilePattern = "**/*.{yaml,yml,json}"

//go:embed seed.yaml
var seedData []byte

// Seed returns the built-in exercise catalog.
func Seed() ([]models.Exercise, error) {
	exercises, err := Parse(seedData)
	if err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return exercises, nil
}

// Parse decodes a list of exercises from YAML or JSON and validates each one.
// Missing phase affinity defaults to ANY and missing difficulty to INTERMEDIATE.
func Parse(data []byte) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := yaml.Unmarshal(data, &exercises); err != nil {
		return nil, err
	}
	for i := range exercises {
		if err := normalize(&exercises[i]); err != nil {
			return nil, fmt.Errorf("exercise %d: %w", i, err)
		}
	}
	return exercises, nil
}

func normalize(ex *models.Exercise) error {
	if strings.TrimSpace(ex.ID) == "" {
		return fmt.Errorf("missing id")
	}
	if strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("%s: missing name", ex.ID)
	}
	ex.MovementPattern = models.MovementPattern(strings.ToUpper(string(ex.MovementPattern)))
	if !models.IsValidMovementPattern(string(ex.MovementPattern)) {
		return fmt.Errorf("%s: invalid movement pattern %q", ex.ID, ex.MovementPattern)
	}
	ex.Equipment = models.Equipment(strings.ToUpper(string(ex.Equipment)))
	if ex.Equipment == "" {
		ex.Equipment = models.EquipmentNone
	}
	ex.PhaseAffinity = models.PhaseAffinity(strings.ToUpper(string(ex.PhaseAffinity)))
	if ex.PhaseAffinity == "" {
		ex.PhaseAffinity = models.AffinityAny
	}
	ex.Difficulty = models.Difficulty(strings.ToUpper(string(ex.Difficulty)))
	if ex.Difficulty == "" {
		ex.Difficulty = models.DifficultyIntermediate
	}
	return nil
}

// LoadDir reads every catalog file under dir, in lexical path order.
func LoadDir(dir string) ([]models.Exercise, error) {
	fsys := os.DirFS(dir)
	paths, err := doublestar.Glob(fsys, FilePattern)
	if err != nil {
		return nil, fmt.Errorf("glob catalog dir: %w", err)
	}

	var all []models.Exercise
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		exercises, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, p), err)
		}
		all = append(all, exercises...)
	}
	return all, nil
}

// Merge overlays exercises onto base. Entries with a known id replace the base
// entry in place; others are appended.
func Merge(base, overlay []models.Exercise) []models.Exercise {
	out := append([]models.Exercise(nil), base...)
	index := make(map[string]int, len(out))
	for i, ex := range out {
		index[ex.ID] = i
	}
	for _, ex := range overlay {
		if i, ok := index[ex.ID]; ok {
			out[i] = ex
			continue
		}
		index[ex.ID] = len(out)
		out = append(out, ex)
	}
	return out
}

// IsCatalogFile reports whether a path relative to a catalog dir is a catalog file.
func IsCatalogFile(rel string) bool {
	ok, _ := doublestar.Match(FilePattern, filepath.ToSlash(rel))
	return ok
}
