// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                       – dotenv values,
//   • `conf/global.yaml`                    – primary static file,
//   • `TRP_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so consumers never see
// Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Backend section
//

// Backend locates the external lead-management REST service.  Every lead
// the site captures is forwarded here; nothing is stored locally.
type Backend struct {
	BaseURL        string `koanf:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"min=1,max=120"`
}

//
// Site section
//

// Site carries the clinic identity shown on every page and used by the
// error-recovery copy.
type Site struct {
	Name        string   `koanf:"name"         validate:"required"`
	Tagline     string   `koanf:"tagline"`
	ServiceArea string   `koanf:"service_area"`
	Phones      []string `koanf:"phones"       validate:"required,min=1"`
	Email       string   `koanf:"email"        validate:"required,email"`
}

//
// Security section
//

// Security holds the signing secrets.  Either value may be a literal or a
// `vault:mount/path#key` reference; the loader resolves references before
// anything else sees them.
type Security struct {
	SessionKey string `koanf:"session_key" validate:"required"`
	CSRFKey    string `koanf:"csrf_key"`
}

//
// Geo section
//

// Geo configures the optional GeoLite2 lookup.  An empty path disables it.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or TRP_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // TRP_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP              `koanf:"http"`
	Backend  Backend           `koanf:"backend"`
	Site     Site              `koanf:"site"`
	Security Security          `koanf:"security"`
	Geo      Geo               `koanf:"geo"`
	Aliases  map[string]string `koanf:"aliases"` // friendly path → canonical path
	Paths    Paths             `koanf:"-"`       // not loaded from config files
}
