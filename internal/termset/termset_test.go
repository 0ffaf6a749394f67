package termset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

const validTermsYAML = `version: "1"
sets:
  - name: orthodontists
    terms:
      - orthodontist
      - braces
  - name: labs
    terms:
      - crown
`

func writeTermsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write terms file: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	f, err := LoadFromFile(writeTermsFile(t, validTermsYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f == nil || len(f.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %+v", f)
	}
	if f.Sets[0].Name != "orthodontists" || len(f.Sets[0].Terms) != 2 {
		t.Errorf("unexpected first set: %+v", f.Sets[0])
	}
}

func TestLoadFromFileMissingIsNotError(t *testing.T) {
	f, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if f != nil {
		t.Errorf("expected nil file, got %+v", f)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	if _, err := LoadFromFile(writeTermsFile(t, "sets: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromFileRejectsEmptyName(t *testing.T) {
	content := "sets:\n  - name: \"\"\n    terms: [x]\n"
	if _, err := LoadFromFile(writeTermsFile(t, content)); err == nil {
		t.Error("expected validation error for empty name")
	}
}

func TestLoadFromFileRejectsEmptyTerms(t *testing.T) {
	content := "sets:\n  - name: empty\n    terms: []\n"
	if _, err := LoadFromFile(writeTermsFile(t, content)); err == nil {
		t.Error("expected validation error for empty terms")
	}
}

func TestLoadFromFileRejectsBuiltinShadow(t *testing.T) {
	content := "sets:\n  - name: dentists\n    terms: [tooth]\n"
	if _, err := LoadFromFile(writeTermsFile(t, content)); err == nil {
		t.Error("expected error for shadowing a built-in set")
	}
}

func TestResolveBuiltin(t *testing.T) {
	set, err := Resolve(models.SetDentists, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Name != models.SetDentists {
		t.Errorf("unexpected set: %+v", set)
	}
}

func TestResolveCustom(t *testing.T) {
	f, err := LoadFromFile(writeTermsFile(t, validTermsYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := Resolve("labs", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(set.Terms, []string{"crown"}) {
		t.Errorf("unexpected terms: %v", set.Terms)
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := Resolve("bogus", nil); err == nil {
		t.Error("expected error for unknown set")
	}
}

func TestNames(t *testing.T) {
	f, err := LoadFromFile(writeTermsFile(t, validTermsYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Names(f)
	want := []string{"dentists", "networks", "dsos", "labs", "orthodontists"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNamesNoCustomFile(t *testing.T) {
	got := Names(nil)
	if !reflect.DeepEqual(got, models.BuiltinNames()) {
		t.Errorf("expected builtins only, got %v", got)
	}
}

func TestFindTermsFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, DefaultFileName), []byte(validTermsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	found := FindTermsFile()
	if found == "" {
		t.Fatal("expected to find terms file in ancestor directory")
	}
	if filepath.Base(found) != DefaultFileName {
		t.Errorf("unexpected path: %s", found)
	}
}
