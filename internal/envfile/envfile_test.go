package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		content string
		entries []Entry
		want    string
	}{
		{
			name:    "empty file",
			content: "",
			entries: []Entry{E("PORT", 3000), E("ENVIRONMENT", "development")},
			want:    "PORT=3000\nENVIRONMENT=development\n",
		},
		{
			name:    "replace existing and append new",
			content: "PORT=3000\n",
			entries: []Entry{E("PORT", 4000), E("HOST", "localhost")},
			want:    "PORT=4000\nHOST=localhost\n",
		},
		{
			name:    "untouched keys keep their position",
			content: "A=1\nPORT=3000\nB=2",
			entries: []Entry{E("PORT", "8080")},
			want:    "A=1\nPORT=8080\nB=2\n",
		},
		{
			name:    "booleans are stringified",
			content: "",
			entries: []Entry{E("DATABASE_SSL", false), E("DATABASE_LOGGING", true)},
			want:    "DATABASE_SSL=false\nDATABASE_LOGGING=true\n",
		},
		{
			name:    "key prefix does not match longer key",
			content: "DATABASE_PORT_OLD=1\n",
			entries: []Entry{E("DATABASE_PORT", 5432)},
			want:    "DATABASE_PORT_OLD=1\nDATABASE_PORT=5432\n",
		},
		{
			name:    "commented key is not replaced",
			content: "# PORT=1\n",
			entries: []Entry{E("PORT", 2)},
			want:    "# PORT=1\nPORT=2\n",
		},
		{
			name:    "duplicate keys collapse to one",
			content: "PORT=1\nX=y\nPORT=2\n",
			entries: []Entry{E("PORT", 3)},
			want:    "PORT=3\nX=y\n",
		},
		{
			name:    "values are not escaped",
			content: "",
			entries: []Entry{E("DATABASE_URI", "mongodb://u:p@h:27017/db?a=b&c=d")},
			want:    "DATABASE_URI=mongodb://u:p@h:27017/db?a=b&c=d\n",
		},
		{
			name:    "trailing whitespace trimmed",
			content: "PORT=3000\n\n\n  ",
			entries: []Entry{E("HOST", "h")},
			want:    "PORT=3000\nHOST=h\n",
		},
		{
			name:    "crlf line endings are kept",
			content: "PORT=3000\r\nHOST=a\r\n",
			entries: []Entry{E("PORT", 4000), E("NAME", "x")},
			want:    "PORT=4000\r\nHOST=a\r\nNAME=x\r\n",
		},
		{
			name:    "crlf duplicate removed with its terminator",
			content: "PORT=1\r\nX=y\r\nPORT=2\r\n",
			entries: []Entry{E("PORT", 3)},
			want:    "PORT=3\r\nX=y\r\n",
		},
		{
			name:    "regex metacharacters in key",
			content: "A.B=1\nAXB=2\n",
			entries: []Entry{E("A.B", 9)},
			want:    "A.B=9\nAXB=2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.content, tt.entries...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_Idempotent(t *testing.T) {
	entries := []Entry{
		E("PORT", 4000),
		E("HOST", "localhost"),
		E("DATABASE_SSL", true),
	}
	inputs := []string{"", "PORT=3000", "X=1\nPORT=3000\n\n", "HOST=old\nPORT=1\nHOST=older\n"}

	for _, in := range inputs {
		once := Merge(in, entries...)
		twice := Merge(once, entries...)
		if once != twice {
			t.Errorf("second merge changed content for input %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestUpdate_Scenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=3000"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Update(path, E("PORT", 4000), E("HOST", "localhost")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if n := strings.Count(content, "PORT="); n != 1 {
		t.Errorf("PORT appears %d times, want 1:\n%s", n, content)
	}
	if !strings.Contains(content, "PORT=4000\n") || !strings.Contains(content, "HOST=localhost") {
		t.Errorf("unexpected content:\n%s", content)
	}
}

func TestUpdate_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := Update(path, E("PORT", "3000")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(map[string]string{"PORT": "3000"}, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Read() = %v, want empty", got)
	}
}

func TestUpdateThenRead_RoundTrip(t *testing.T) {
	values := []string{
		"pw #1",
		"p #x",
		"'q'",
		`"quoted"`,
		`"open`,
		"a$HOME$b",
		"${USER}",
		"k=v=w",
		"mongodb://u:p@h:27017/db?a=b&c=d",
		"  padded",
		"",
	}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if err := Update(path, E("PORT", 3000), E("DATABASE_PASSWORD", v)); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got["DATABASE_PASSWORD"] != v {
				t.Errorf("DATABASE_PASSWORD = %q, want %q", got["DATABASE_PASSWORD"], v)
			}

			before, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := Update(path, E("DATABASE_PASSWORD", got["DATABASE_PASSWORD"])); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			after, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(before), string(after)); diff != "" {
				t.Errorf("writing the read value back changed the file (-before +after):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	content := strings.Join([]string{
		"# comment",
		"PORT=3000 # not a comment here",
		"export REDIS_HOST=cache",
		"SPACED = 'value'",
		"",
	}, "\r\n")

	got, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]string{
		"PORT":       "3000 # not a comment here",
		"REDIS_HOST": "cache",
		"SPACED":     "value",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}
