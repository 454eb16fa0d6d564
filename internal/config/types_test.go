package config

import (
	"testing"

	"github.com/modu-ai/nestforge/pkg/models"
)

func TestNormalize_ClearsFieldsForEngine(t *testing.T) {
	r := validPostgresRecord()
	r.Database.Engine = models.EngineMongoDB
	r.Database.URI = DefaultMongoURI
	r.Database.SSL = true
	r.Normalize()

	db := r.Database
	if db.Host != "" || db.Port != "" || db.Name != "" || db.User != "" || db.Password != "" {
		t.Errorf("SQL fields not cleared for MongoDB: %+v", db)
	}
	if db.SSL {
		t.Error("SSL should be cleared for MongoDB")
	}
	if db.URI != DefaultMongoURI {
		t.Errorf("URI = %q, want kept", db.URI)
	}
}

func TestNormalize_ClearsORMFlagsWithoutORM(t *testing.T) {
	r := validPostgresRecord()
	r.Database.UseTypeORM = false
	r.Database.SSL = true
	r.Database.Logging = true
	r.Normalize()

	if r.Database.SSL || r.Database.Logging {
		t.Errorf("ORM flags not cleared: %+v", r.Database)
	}
	if r.Database.Host == "" {
		t.Error("host should be kept for SQL without ORM")
	}
}

func TestRecord_EnableAndEnabled(t *testing.T) {
	r := &Record{}
	for _, f := range models.AllFeatures() {
		if f == models.FeatureDatabase {
			if !r.Enabled(f) {
				t.Error("database feature is always enabled")
			}
			continue
		}
		if r.Enabled(f) {
			t.Errorf("%s enabled on empty record", f)
		}
		r.Enable(f)
		if !r.Enabled(f) {
			t.Errorf("%s not enabled after Enable", f)
		}
	}
}

func TestRecord_UserModuleSupported(t *testing.T) {
	tests := []struct {
		engine models.DatabaseEngine
		orm    bool
		want   bool
	}{
		{models.EnginePostgreSQL, true, true},
		{models.EngineMySQL, true, true},
		{models.EnginePostgreSQL, false, false},
		{models.EngineMongoDB, true, false},
	}
	for _, tt := range tests {
		r := &Record{Database: DatabaseConfig{Engine: tt.engine, UseTypeORM: tt.orm}}
		if got := r.UserModuleSupported(); got != tt.want {
			t.Errorf("%s orm=%v: got %v, want %v", tt.engine, tt.orm, got, tt.want)
		}
	}
}

func TestRecord_Redacted(t *testing.T) {
	r := validPostgresRecord()
	r.Redis.Password = "redis-pass"
	r.SonarQube = SonarConfig{Enabled: true, ServerURL: DefaultSonarServerURL, Token: "squ_abc"}

	red := r.Redacted()
	if red.Database.Password != "" || red.Redis.Password != "" || red.SonarQube.Token != "" {
		t.Errorf("secrets left in redacted record: %+v", red)
	}
	if r.Database.Password != "secret" {
		t.Error("Redacted must not modify the receiver")
	}

	m := &Record{Database: DatabaseConfig{Engine: models.EngineMongoDB, URI: "mongodb://app:pw@db:27017/app"}}
	if got := m.Redacted().Database.URI; got != "mongodb://app@db:27017/app" {
		t.Errorf("redacted URI = %q", got)
	}
}

func TestNormalize_ComposesProjectName(t *testing.T) {
	r := NewDefaultRecord()
	r.ProjectName = " cafe\u0301-api "
	r.Normalize()
	if r.ProjectName != "caf\u00e9-api" {
		t.Errorf("ProjectName = %q, want NFC-composed trimmed name", r.ProjectName)
	}
}
