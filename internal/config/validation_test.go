package config

import (
	"errors"
	"slices"
	"testing"

	"github.com/modu-ai/nestforge/pkg/models"
)

func validPostgresRecord() *Record {
	r := NewDefaultRecord()
	r.ProjectName = "shop-api"
	r.Database.Name = "shop"
	r.Database.Password = "secret"
	return r
}

func TestValidate_DefaultPostgresRecord(t *testing.T) {
	if err := Validate(validPostgresRecord()); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Record)
		wantField string
		wantErr   error
	}{
		{
			name:      "missing project name",
			mutate:    func(r *Record) { r.ProjectName = "" },
			wantField: "project_name",
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "project name with separator",
			mutate:    func(r *Record) { r.ProjectName = "../escape" },
			wantField: "project_name",
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "non numeric port",
			mutate:    func(r *Record) { r.Port = "http" },
			wantField: "port",
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "unknown environment",
			mutate:    func(r *Record) { r.Environment = "staging" },
			wantField: "environment",
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "unknown engine",
			mutate:    func(r *Record) { r.Database.Engine = "SQLite" },
			wantField: "database.engine",
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "sql without database name",
			mutate:    func(r *Record) { r.Database.Name = "" },
			wantField: "database.name",
			wantErr:   ErrInvalidDatabase,
		},
		{
			name:      "sql with uri",
			mutate:    func(r *Record) { r.Database.URI = "mongodb://localhost" },
			wantField: "database.uri",
			wantErr:   ErrInvalidDatabase,
		},
		{
			name:      "port out of range",
			mutate:    func(r *Record) { r.Database.Port = "70000" },
			wantField: "database.port",
			wantErr:   ErrInvalidDatabase,
		},
		{
			name: "orm flags without orm",
			mutate: func(r *Record) {
				r.Database.UseTypeORM = false
				r.Database.Synchronize = true
			},
			wantField: "database.ssl",
			wantErr:   ErrInvalidDatabase,
		},
		{
			name: "mongo with sql fields",
			mutate: func(r *Record) {
				r.Database.Engine = models.EngineMongoDB
				r.Database.URI = DefaultMongoURI
			},
			wantField: "database.host",
			wantErr:   ErrInvalidDatabase,
		},
		{
			name: "mongo with http uri",
			mutate: func(r *Record) {
				r.Database = DatabaseConfig{Engine: models.EngineMongoDB, URI: "http://localhost"}
			},
			wantField: "database.uri",
			wantErr:   ErrInvalidDatabase,
		},
		{
			name:      "sonar without url",
			mutate:    func(r *Record) { r.SonarQube = SonarConfig{Enabled: true} },
			wantField: "sonarqube.server_url",
			wantErr:   ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validPostgresRecord()
			tt.mutate(r)

			err := Validate(r)
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected *ValidationErrors, got %T", err)
			}
			if !slices.Contains(verrs.Fields(), tt.wantField) {
				t.Errorf("fields = %v, want to contain %q", verrs.Fields(), tt.wantField)
			}
		})
	}
}

func TestValidate_MongoRecord(t *testing.T) {
	r := NewDefaultRecord()
	r.ProjectName = "docs"
	r.Database = DatabaseConfig{Engine: models.EngineMongoDB}
	ApplyDefaults(r)
	r.Normalize()

	if err := Validate(r); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if r.Database.URI != DefaultMongoURI {
		t.Errorf("URI = %q, want default", r.Database.URI)
	}
}

func TestIsValidProjectName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"shop-api", true},
		{"my_app", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{`a\b`, false},
		{" padded", false},
		{"-flag", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidProjectName(tt.name); got != tt.want {
				t.Errorf("IsValidProjectName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
