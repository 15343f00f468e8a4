// internal/form/definition.go
//
// True Relief Physio – forms subsystem: YAML definition loader.
//
// Context
//   Each lead form is declared in a YAML file under its component's “forms/”
//   directory (components/booking/forms/appointment.yaml, and so on).  At
//   application start we parse every “*.yaml” under “components/*/forms/”
//   and store the resulting FormDef in an in-memory registry.  The renderer
//   and page handlers fetch definitions from this registry by ID,
//   guaranteeing a single source of truth for field order, labels, and
//   select options.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef → Option.
//   •  Select fields may name a shared option catalog (“options_from:
//      services”) instead of listing options inline; the loader resolves the
//      reference so the renderer never touches the catalog directly.
//   •  LoadFormDef parses a single YAML file and validates structural rules.
//   •  RegisterForms walks a base directory, discovers YAMLs, loads them,
//      and adds them to the registry.
//   •  GetFormDef offers safe, read-only access to a parsed form by ID.
//
// Style
//   Comments are full sentences with two spaces after periods and Oxford
//   commas.  Helper comments use short noun phrases.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/truereliefphysio/physioweb/internal/catalog"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
//
// The form is uniquely identified by ID, namespaced by component, e.g.
// “booking/appointment”.
type FormDef struct {
	ID          string     `yaml:"id"`           // Component-scoped identifier.
	Title       string     `yaml:"title"`        // Display title, optional.
	SubmitLabel string     `yaml:"submit_label"` // Button text, defaults to “Submit”.
	Fields      []FieldDef `yaml:"fields"`       // Field list, in render order.
}

// FieldDef describes a single input control on the form.
type FieldDef struct {
	Name        string   `yaml:"name"`         // Submission key.  Required.
	Label       string   `yaml:"label"`        // Human-readable label.  Required.
	Type        string   `yaml:"type"`         // text, email, tel, number, date, select, textarea.
	Placeholder string   `yaml:"placeholder"`  // Optional placeholder text.
	Required    bool     `yaml:"required"`     // True if input is mandatory.
	MaxLength   int      `yaml:"maxlength"`    // ≥ 0, 0 means unset.
	Options     []Option `yaml:"options"`      // For select.  Mutually exclusive with OptionsFrom.
	OptionsFrom string   `yaml:"options_from"` // Named option catalog: services, concern_types, time_slots.
}

// Option is one select choice: the wire value and its display label.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// registry maps compositeID (“comp/form”) → *FormDef.  Guarded by mutex.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

// GetFormDef returns a parsed FormDef by composite ID (“component/form”).
// The boolean is false when the ID is unknown.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFormDef parses one YAML file, validates its structure, resolves any
// catalog-backed option lists, and returns a populated FormDef.  It NEVER
// mutates the global registry.
func LoadFormDef(path string) (*FormDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}

	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if err := validateFormDef(&fd, path); err != nil {
		return nil, err
	}
	if err := resolveOptions(&fd, path); err != nil {
		return nil, err
	}

	if fd.SubmitLabel == "" {
		fd.SubmitLabel = "Submit"
	}

	return &fd, nil
}

// RegisterForms walks baseDir and loads every “*.yaml” under
// “components/*/forms/”.
//
// Example:
//
//	err := form.RegisterForms("/var/physioweb")
func RegisterForms(baseDir string) error {
	if baseDir == "" {
		return errors.New("RegisterForms: no base directory provided")
	}

	formsRoot := filepath.Join(baseDir, "components")
	err := filepath.WalkDir(formsRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil // skip non-YAML
		}
		if filepath.Base(filepath.Dir(path)) != "forms" {
			return nil // only forms/ subdirectories hold definitions
		}

		fd, err := LoadFormDef(path)
		if err != nil {
			return err // fail fast so issues surface loudly.
		}
		register(fd)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err // propagate IO or parse errors.
	}

	return nil
}

// register inserts or overrides the form in the global registry and registers
// a corresponding widget.  Caller must ensure the FormDef passed validation.
func register(fd *FormDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[fd.ID] = fd
	injectWidgetRegistration(fd) // ensure widget available for templates.
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

// validateFormDef enforces structural rules that cannot be expressed via YAML
// tags alone.  It returns a descriptive error referencing the offending file.
func validateFormDef(fd *FormDef, path string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", path)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", path)
	}

	fieldNames := make(map[string]struct{})
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("form %s: field missing 'name'", path)
		}
		if f.Label == "" {
			return fmt.Errorf("form %s: field '%s' missing 'label'", path, f.Name)
		}
		if f.Type == "" {
			return fmt.Errorf("form %s: field '%s' missing 'type'", path, f.Name)
		}
		if f.MaxLength < 0 {
			return fmt.Errorf("form %s: field '%s' maxlength cannot be negative", path, f.Name)
		}
		if len(f.Options) > 0 && f.OptionsFrom != "" {
			return fmt.Errorf("form %s: field '%s' has both 'options' and 'options_from'", path, f.Name)
		}
		if _, dup := fieldNames[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", path, f.Name)
		}
		fieldNames[f.Name] = struct{}{}
	}

	return nil
}

// resolveOptions replaces each OptionsFrom reference with the concrete option
// list from the shared catalog.
func resolveOptions(fd *FormDef, path string) error {
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if f.OptionsFrom == "" {
			continue
		}

		switch f.OptionsFrom {
		case "services":
			f.Options = fromCatalog(catalog.Services())
		case "concern_types":
			f.Options = fromCatalog(catalog.ConcernTypes())
		case "time_slots":
			// Slots display as-is; value and label coincide.
			slots := catalog.TimeSlots()
			f.Options = make([]Option, len(slots))
			for j, s := range slots {
				f.Options[j] = Option{Value: s, Label: s}
			}
		default:
			return fmt.Errorf("form %s: field '%s' references unknown option catalog '%s'",
				path, f.Name, f.OptionsFrom)
		}
	}
	return nil
}

// fromCatalog converts catalog options into form options.
func fromCatalog(opts []catalog.Option) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		out[i] = Option{Value: o.Value, Label: o.Label}
	}
	return out
}
