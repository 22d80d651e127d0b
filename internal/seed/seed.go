// Package seed provides the demo positions and candidates every new owner
// starts with.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	dbfs "github.com/garnizeh/talentdesk/db"
	"github.com/garnizeh/talentdesk/internal/schema"
	"github.com/garnizeh/talentdesk/pkg/models"
)

const (
	positionsFile  = "seed/positions.json"
	candidatesFile = "seed/candidates.json"
)

// Data is a validated demo data set.
type Data struct {
	Positions  []models.Position
	Candidates []models.Candidate
}

// Load reads the demo files from fsys and validates them against the
// seed_positions and seed_candidates schemas.
func Load(ctx context.Context, fsys fs.FS, schemas *schema.Loader) (*Data, error) {
	var d Data
	if err := loadFile(ctx, fsys, schemas, positionsFile, schema.SeedPositions, &d.Positions); err != nil {
		return nil, err
	}
	if err := loadFile(ctx, fsys, schemas, candidatesFile, schema.SeedCandidates, &d.Candidates); err != nil {
		return nil, err
	}

	for _, p := range d.Positions {
		if p.ExperienceMin > p.ExperienceMax {
			return nil, fmt.Errorf("seed position %s: experienceMin %d > experienceMax %d", p.ID, p.ExperienceMin, p.ExperienceMax)
		}
	}

	return &d, nil
}

// Default loads the demo data embedded in the binary.
func Default(ctx context.Context, schemas *schema.Loader) (*Data, error) {
	return Load(ctx, dbfs.SeedFiles, schemas)
}

func loadFile(ctx context.Context, fsys fs.FS, schemas *schema.Loader, name, schemaName string, dst any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := schemas.Validate(ctx, schemaName, b); err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}

	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	return nil
}
