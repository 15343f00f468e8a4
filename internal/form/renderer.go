// internal/form/renderer.go
//
// True Relief Physio – forms subsystem: HTML renderer.
//
// Context
//   Given a parsed FormDef (from definition.go) this file converts the
//   definition into plain, accessible HTML markup.  The renderer applies
//   HTML5 validation attributes, injects CSRF-token and render-timestamp
//   hidden inputs, honours previously entered values, and places each
//   field's standing validation message next to its input so a failed
//   submission re-renders with every problem visible.
//
// Workflow
//   •  RenderForm looks up the FormDef by ID and writes each field via
//      writeField.
//   •  Required, maxlength, and placeholder attributes are attached where
//      relevant.  Select options are rendered from the resolved Options
//      slice with a blank “Select …” placeholder first.
//   •  A cryptographically strong CSRF token is generated via GenerateToken
//      (csrf.go) and embedded as a hidden <input>, together with a render
//      timestamp in microseconds for submission timing checks.
//   •  The caller receives the final HTML as template.HTML so the
//      surrounding template does not double-escape the markup.
//
// Style
//   Output HTML is deliberately plain, no framework classes, so the minimal
//   stylesheet can target element selectors.  Each input gets id="fld-{name}"
//   and is wrapped in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"time"
)

// RenderOptions bundles optional parameters influencing HTML output.
type RenderOptions struct {
	// Values provides field values keyed by field name, typically the
	// visitor's previous input after a failed submission.
	Values map[string]string
	// Errors provides per-field validation messages to render inline.
	Errors map[string]string
}

// RenderForm returns the HTML markup for the specified form ID, including
// security tokens and the submit button.
func RenderForm(formID string, opts RenderOptions) (template.HTML, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return "", fmt.Errorf("RenderForm: unknown form %q", formID)
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="trp-form">` + "\n")

	// Iterate fields in definition order.
	for i := range fd.Fields {
		if err := writeField(&buf, &fd.Fields[i], opts); err != nil {
			return "", err
		}
	}

	// Hidden meta inputs.
	buf.WriteString(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`+"\n", csrfGenerateToken()))
	buf.WriteString(fmt.Sprintf(`<input type="hidden" name="render_ts" value="%d">`+"\n", time.Now().UnixMicro()))

	buf.WriteString(`<button type="submit">` + html.EscapeString(fd.SubmitLabel) + `</button>` + "\n")
	buf.WriteString(`</div>`)
	return template.HTML(buf.String()), nil
}

// writeField emits HTML for an individual field into buf, applying the
// current value, validation attributes, and any standing error message.
func writeField(buf *bytes.Buffer, f *FieldDef, opts RenderOptions) error {
	val := opts.Values[f.Name]
	errMsg := opts.Errors[f.Name]

	buf.WriteString(`<div class="form-field">` + "\n")

	idAttr := `id="fld-` + html.EscapeString(f.Name) + `"`
	nameAttr := `name="` + html.EscapeString(f.Name) + `"`

	// Label first (for accessibility).
	buf.WriteString(`<label for="fld-` + html.EscapeString(f.Name) + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	switch f.Type {
	case "text", "email", "tel", "number", "date", "password":
		buf.WriteString(`<input ` + idAttr + ` ` + nameAttr + ` type="` + f.Type + `"`)
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		if f.Required {
			buf.WriteString(` required`)
		}
		if f.MaxLength > 0 {
			buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
		}
		if val != "" && f.Type != "password" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case "textarea":
		buf.WriteString(`<textarea ` + idAttr + ` ` + nameAttr)
		if f.Required {
			buf.WriteString(` required`)
		}
		if f.MaxLength > 0 {
			buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
		}
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		buf.WriteString(`>`)
		if val != "" {
			buf.WriteString(html.EscapeString(val))
		}
		buf.WriteString(`</textarea>` + "\n")

	case "select":
		buf.WriteString(`<select ` + idAttr + ` ` + nameAttr)
		if f.Required {
			buf.WriteString(` required`)
		}
		buf.WriteString(`>` + "\n")
		buf.WriteString(`<option value="">Select ` + html.EscapeString(f.Label) + `</option>` + "\n")
		for _, opt := range f.Options {
			sel := ""
			if val == opt.Value {
				sel = ` selected`
			}
			buf.WriteString(`<option value="` + html.EscapeString(opt.Value) + `"` + sel + `>` + html.EscapeString(opt.Label) + `</option>` + "\n")
		}
		buf.WriteString(`</select>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported field type %q in form field %s", f.Type, f.Name)
	}

	// Error message slot, populated on re-render after a failed submission.
	buf.WriteString(`<span class="error" aria-live="polite">`)
	if errMsg != "" {
		buf.WriteString(html.EscapeString(errMsg))
	}
	buf.WriteString(`</span>` + "\n")

	buf.WriteString(`</div>` + "\n")
	return nil
}

// csrfGenerateToken is a thin wrapper around GenerateToken so the renderer
// degrades gracefully if entropy is unavailable (extremely rare).
func csrfGenerateToken() string {
	token, err := GenerateToken()
	if err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return token
}
