// internal/form/definition_test.go
//
// Loader tests run against YAML files written into t.TempDir, mirroring the
// on-disk layout RegisterForms expects.
//
//------------------------------------------------------------------------------

package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeYAML(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const minimalForm = `
id: demo/simple
title: Demo
fields:
  - name: name
    label: Name
    type: text
    required: true
    maxlength: 100
`

func TestLoadFormDef_Minimal(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "simple.yaml", minimalForm)

	fd, err := LoadFormDef(path)
	if err != nil {
		t.Fatalf("LoadFormDef: %v", err)
	}
	if fd.ID != "demo/simple" || fd.Title != "Demo" {
		t.Errorf("fd = %+v", fd)
	}
	if fd.SubmitLabel != "Submit" {
		t.Errorf("SubmitLabel = %q, want default", fd.SubmitLabel)
	}
	if len(fd.Fields) != 1 || fd.Fields[0].MaxLength != 100 || !fd.Fields[0].Required {
		t.Errorf("Fields = %+v", fd.Fields)
	}
}

func TestLoadFormDef_CatalogOptions(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "catalog.yaml", `
id: demo/catalog
fields:
  - name: service
    label: Service
    type: select
    options_from: services
  - name: time
    label: Preferred Time
    type: select
    options_from: time_slots
`)

	fd, err := LoadFormDef(path)
	if err != nil {
		t.Fatalf("LoadFormDef: %v", err)
	}
	if len(fd.Fields[0].Options) == 0 {
		t.Error("services catalog resolved to no options")
	}
	slots := fd.Fields[1].Options
	if len(slots) == 0 {
		t.Fatal("time_slots catalog resolved to no options")
	}
	// Slot value and label coincide.
	if slots[0].Value != slots[0].Label {
		t.Errorf("slot = %+v, want value == label", slots[0])
	}
}

func TestLoadFormDef_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"missing id", "fields:\n  - name: a\n    label: A\n    type: text\n", "missing required 'id'"},
		{"no fields", "id: x/y\n", "must have 'fields'"},
		{"field without name", "id: x/y\nfields:\n  - label: A\n    type: text\n", "field missing 'name'"},
		{"field without label", "id: x/y\nfields:\n  - name: a\n    type: text\n", "missing 'label'"},
		{"field without type", "id: x/y\nfields:\n  - name: a\n    label: A\n", "missing 'type'"},
		{"duplicate field", "id: x/y\nfields:\n  - name: a\n    label: A\n    type: text\n  - name: a\n    label: B\n    type: text\n", "duplicate field name 'a'"},
		{"unknown catalog", "id: x/y\nfields:\n  - name: a\n    label: A\n    type: select\n    options_from: nope\n", "unknown option catalog 'nope'"},
		{"options and options_from", "id: x/y\nfields:\n  - name: a\n    label: A\n    type: select\n    options_from: services\n    options:\n      - value: v\n        label: L\n", "both 'options' and 'options_from'"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeYAML(t, t.TempDir(), "bad.yaml", c.yaml)
			_, err := LoadFormDef(path)
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error = %q, want substring %q", err, c.want)
			}
		})
	}
}

func TestRegisterForms_WalksComponentDirs(t *testing.T) {
	root := t.TempDir()
	formsDir := filepath.Join(root, "components", "demo", "forms")
	if err := os.MkdirAll(formsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeYAML(t, formsDir, "reg.yaml", `
id: demo/reg
fields:
  - name: name
    label: Name
    type: text
`)
	// YAML outside a forms/ directory must be ignored.
	other := filepath.Join(root, "components", "demo")
	writeYAML(t, other, "stray.yaml", "not a form at all: [")

	if err := RegisterForms(root); err != nil {
		t.Fatalf("RegisterForms: %v", err)
	}
	if _, ok := GetFormDef("demo/reg"); !ok {
		t.Error("demo/reg not registered")
	}
}

func TestRegisterForms_MissingDirIsFine(t *testing.T) {
	if err := RegisterForms(filepath.Join(t.TempDir(), "nothing-here")); err != nil {
		t.Errorf("RegisterForms on missing dir: %v", err)
	}
	if err := RegisterForms(""); err == nil {
		t.Error("RegisterForms(\"\") should fail")
	}
}
