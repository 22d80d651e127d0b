package schema_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/talentdesk/db"
	"github.com/garnizeh/talentdesk/internal/schema"
)

func TestLoader_EmbeddedSchemas(t *testing.T) {
	l, err := schema.NewLoader(dbfs.Schemas)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	for _, name := range []string{schema.Registration, schema.Login, schema.ProfileUpdate, schema.Position, schema.PositionUpdate, schema.SeedPositions, schema.SeedCandidates} {
		if !l.Has(name) {
			t.Fatalf("expected schema %q to be loaded", name)
		}
	}
}

func TestLoader_Validate(t *testing.T) {
	l, err := schema.NewLoader(dbfs.Schemas)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		schema  string
		doc     string
		wantErr bool
	}{
		{
			name:   "Position_Valid",
			schema: schema.Position,
			doc:    `{"title":"SRE","category":"Engineering","description":"Keep it up","experienceMin":2,"experienceMax":4,"workType":"Remote","locations":["Remote"],"priority":"high","requirements":["Go"]}`,
		},
		{
			name:    "Position_MissingTitle",
			schema:  schema.Position,
			doc:     `{"category":"Engineering","description":"d","experienceMin":2,"experienceMax":4,"workType":"Remote","locations":["Remote"]}`,
			wantErr: true,
		},
		{
			name:    "Position_BlankTitle",
			schema:  schema.Position,
			doc:     `{"title":"   ","category":"Engineering","description":"d","experienceMin":2,"experienceMax":4,"workType":"Remote","locations":["Remote"]}`,
			wantErr: true,
		},
		{
			name:    "Position_UnknownCategory",
			schema:  schema.Position,
			doc:     `{"title":"SRE","category":"Legal","description":"d","experienceMin":2,"experienceMax":4,"workType":"Remote","locations":["Remote"]}`,
			wantErr: true,
		},
		{
			name:    "Position_NoLocations",
			schema:  schema.Position,
			doc:     `{"title":"SRE","category":"Engineering","description":"d","experienceMin":2,"experienceMax":4,"workType":"Remote","locations":[]}`,
			wantErr: true,
		},
		{
			name:   "PositionUpdate_Partial",
			schema: schema.PositionUpdate,
			doc:    `{"priority":"critical"}`,
		},
		{
			name:    "PositionUpdate_BadStatus",
			schema:  schema.PositionUpdate,
			doc:     `{"status":"archived"}`,
			wantErr: true,
		},
		{
			name:    "Registration_ShortPassword",
			schema:  schema.Registration,
			doc:     `{"email":"a@b.co","password":"short","hirerName":"A","hirerTitle":"B","companyName":"C","companyWebsite":"c.co","officeLocations":["Boston"]}`,
			wantErr: true,
		},
		{
			name:    "Registration_BadEmail",
			schema:  schema.Registration,
			doc:     `{"email":"not-an-email","password":"longenough","hirerName":"A","hirerTitle":"B","companyName":"C","companyWebsite":"c.co","officeLocations":["Boston"]}`,
			wantErr: true,
		},
		{
			name:   "Registration_Valid",
			schema: schema.Registration,
			doc:    `{"email":"a@b.co","password":"longenough","hirerName":"A","hirerTitle":"B","companyName":"C","companyWebsite":"c.co","officeLocations":["Boston"]}`,
		},
		{
			name:    "Login_NotJSON",
			schema:  schema.Login,
			doc:     `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Validate(ctx, tt.schema, []byte(tt.doc))
			if tt.wantErr {
				if !errors.Is(err, schema.ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				var verr *schema.ValidationError
				if !errors.As(err, &verr) || len(verr.Problems) == 0 {
					t.Fatalf("expected ValidationError with problems, got %#v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoader_UnknownAndBrokenSchemas(t *testing.T) {
	l, err := schema.NewLoader(fstest.MapFS{
		"schemas/ok.json": {Data: []byte(`{"type":"object"}`)},
	})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if err := l.Validate(context.Background(), "missing", []byte(`{}`)); !errors.Is(err, schema.ErrUnknownSchema) {
		t.Fatalf("expected ErrUnknownSchema, got %v", err)
	}

	if _, err := schema.NewLoader(fstest.MapFS{
		"schemas/broken.json": {Data: []byte(`{"type":`)},
	}); err == nil {
		t.Fatalf("expected compile error for broken schema")
	}

	if _, err := schema.NewLoader(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error for missing schemas dir")
	}
}
