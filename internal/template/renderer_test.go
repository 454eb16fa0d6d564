package template

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/pkg/models"
)

func TestRendererRender(t *testing.T) {
	t.Run("successful_render", func(t *testing.T) {
		fsys := fstest.MapFS{
			"Dockerfile.tmpl": &fstest.MapFile{Data: []byte("EXPOSE {{.Port}}\n")},
		}
		result, err := NewRenderer(fsys).Render("Dockerfile.tmpl", map[string]string{"Port": "8080"})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if string(result) != "EXPOSE 8080\n" {
			t.Errorf("Render result = %q", result)
		}
	})

	t.Run("missing_key_strict_mode", func(t *testing.T) {
		fsys := fstest.MapFS{
			"test.tmpl": &fstest.MapFile{Data: []byte("{{.Port}} {{.Host}}")},
		}
		_, err := NewRenderer(fsys).Render("test.tmpl", map[string]string{"Port": "1"})
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("expected ErrMissingTemplateKey, got: %v", err)
		}
	})

	t.Run("nonexistent_template", func(t *testing.T) {
		_, err := NewRenderer(fstest.MapFS{}).Render("nonexistent.tmpl", nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got: %v", err)
		}
	})

	t.Run("typescript_interpolation_is_kept", func(t *testing.T) {
		fsys := fstest.MapFS{
			"env.tmpl": &fstest.MapFile{Data: []byte("throw new Error(`Environment variable ${key} is not set.`);")},
		}
		result, err := NewRenderer(fsys).Render("env.tmpl", nil)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(result), "${key}") {
			t.Errorf("TypeScript interpolation lost: %s", result)
		}
	})

	t.Run("leftover_action_is_rejected", func(t *testing.T) {
		fsys := fstest.MapFS{
			"nested.tmpl": &fstest.MapFile{Data: []byte("{{.Inner}}")},
		}
		_, err := NewRenderer(fsys).Render("nested.tmpl", map[string]string{"Inner": "{{.Port}}"})
		if !errors.Is(err, ErrUnexpandedToken) {
			t.Errorf("expected ErrUnexpandedToken, got: %v", err)
		}
	})
}

func TestTemplateFuncs(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"title_dashes", `{{title "shop-api"}}`, "Shop Api"},
		{"title_underscores", `{{title "my_app"}}`, "My App"},
		{"json_escape_quotes", `{{jsonEscape "say \"hi\""}}`, `say \"hi\"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"f.tmpl": &fstest.MapFile{Data: []byte(tt.tmpl)}}
			got, err := NewRenderer(fsys).Render("f.tmpl", nil)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func sampleRecords() map[string]*config.Record {
	sql := config.NewDefaultRecord()
	sql.ProjectName = "shop-api"
	sql.Database.Name = "shop"
	sql.Features.UserModule = true
	sql.Features.Redis = true
	sql.SonarQube.Enabled = true
	config.ApplyDefaults(sql)

	mongo := config.NewDefaultRecord()
	mongo.ProjectName = "docs"
	mongo.Database = config.DatabaseConfig{Engine: models.EngineMongoDB}
	mongo.Features = config.FeatureFlags{}
	config.ApplyDefaults(mongo)
	mongo.Normalize()

	return map[string]*config.Record{"postgres": sql, "mongo": mongo}
}

func TestEmbeddedTemplates_AllRender(t *testing.T) {
	fsys := EmbeddedTemplates()
	r := NewRenderer(fsys)

	for name, rec := range sampleRecords() {
		data := NewData(rec)
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			if _, err := r.Render(path, data); err != nil {
				t.Errorf("%s: render %s: %v", name, path, err)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestDatabaseConfigTemplate(t *testing.T) {
	r := NewRenderer(EmbeddedTemplates())
	recs := sampleRecords()

	sql, err := r.Render(DatabaseConfig.Template, NewData(recs["postgres"]))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"type: 'postgres'", "getOsEnv('DATABASE_HOST')", "getOsEnv('DATABASE_SSL') === 'true'"} {
		if !strings.Contains(string(sql), want) {
			t.Errorf("postgres config missing %q:\n%s", want, sql)
		}
	}

	mongo, err := r.Render(DatabaseConfig.Template, NewData(recs["mongo"]))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mongo), "url: getOsEnv('DATABASE_URI')") || strings.Contains(string(mongo), "DATABASE_HOST") {
		t.Errorf("mongo config wrong:\n%s", mongo)
	}
}
