package models_test

import (
	"testing"

	"github.com/modu-ai/nestforge/pkg/models"
)

func TestDatabaseEngineIsValid(t *testing.T) {
	tests := []struct {
		name   string
		engine models.DatabaseEngine
		valid  bool
	}{
		{"postgres", models.EnginePostgreSQL, true},
		{"mongo", models.EngineMongoDB, true},
		{"mysql", models.EngineMySQL, true},
		{"empty", models.DatabaseEngine(""), false},
		{"lowercase", models.DatabaseEngine("postgresql"), false},
		{"sqlite", models.DatabaseEngine("SQLite"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.engine.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestDatabaseEngineKind(t *testing.T) {
	for _, e := range models.ValidDatabaseEngines() {
		if e.IsSQL() == e.IsDocument() {
			t.Errorf("%s: IsSQL and IsDocument must differ", e)
		}
	}
	if models.EngineMongoDB.DefaultPort() != "" {
		t.Error("MongoDB should have no default port")
	}
	if got := models.EnginePostgreSQL.DefaultPort(); got != "5432" {
		t.Errorf("PostgreSQL DefaultPort() = %q, want 5432", got)
	}
}

func TestEnvironmentIsValid(t *testing.T) {
	for _, e := range models.ValidEnvironments() {
		if !e.IsValid() {
			t.Errorf("%s should be valid", e)
		}
	}
	if models.Environment("staging").IsValid() {
		t.Error("staging should be invalid")
	}
}

func TestParseFeature(t *testing.T) {
	tests := []struct {
		in   string
		want models.Feature
		ok   bool
	}{
		{"redis", models.FeatureRedis, true},
		{" Quality-Gate ", models.FeatureQualityGate, true},
		{"user-module", models.FeatureUserModule, true},
		{"kafka", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := models.ParseFeature(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseFeature(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
