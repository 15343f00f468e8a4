// components/admin/admin.go
//
// True Relief Physio – admin dashboard component.
//
// Context
//   Staff review and triage leads here.  Credentials are never embedded in
//   this binary; login POSTs them to the backend's auth endpoint, and a
//   successful answer sets the signed session cookie.  The dashboard shows
//   two tabs (appointments, contacts) fetched live from the backend list
//   endpoints with retry, filtered by a search string and a status, and
//   each row's status can be updated via PATCH.  All backend-supplied lead
//   text is HTML-stripped before rendering; it came from strangers.
//
// Workflow
//   •  GET  /admin/login                        → login form
//   •  POST /admin/login                        → backend verify, set cookie
//   •  POST /admin/logout                       → clear cookie
//   •  GET  /admin?tab=&q=&status=              → dashboard (session required)
//   •  POST /admin/appointments/{id}/status     → PATCH status, redirect back
//   •  POST /admin/contacts/{id}/status         → PATCH status, redirect back
//
//------------------------------------------------------------------------------

package admin

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/truereliefphysio/physioweb/internal/backend"
	"github.com/truereliefphysio/physioweb/internal/catalog"
	"github.com/truereliefphysio/physioweb/internal/component"
	"github.com/truereliefphysio/physioweb/internal/core"
	"github.com/truereliefphysio/physioweb/internal/errclass"
	"github.com/truereliefphysio/physioweb/internal/session"
	"github.com/truereliefphysio/physioweb/internal/site"
	"github.com/truereliefphysio/physioweb/internal/validate"
	"github.com/truereliefphysio/physioweb/internal/view"
)

// Admin is the component instance.
type Admin struct {
	site   site.Info
	client *backend.Client
}

var _ component.Component = (*Admin)(nil)

// New builds the component with its backend client.
func New(info site.Info, client *backend.Client) *Admin {
	return &Admin{site: info, client: client}
}

func (a *Admin) Name() string { return "admin" }
func (a *Admin) Base() string { return "/admin" }

// Routes mounts login plus the session-guarded dashboard.
func (a *Admin) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/login", a.getLogin)
	r.Post("/login", a.postLogin)
	r.Post("/logout", a.postLogout)

	r.Group(func(g chi.Router) {
		g.Use(requireSession)
		g.Get("/", a.getDashboard)
		g.Post("/appointments/{id}/status", a.postStatus("appointments"))
		g.Post("/contacts/{id}/status", a.postStatus("contacts"))
	})
	return r
}

// requireSession bounces unauthenticated requests to the login page.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.AdminUser(r); !ok {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -----------------------------------------------------------------------------
// Login
// -----------------------------------------------------------------------------

func (a *Admin) getLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.AdminUser(r); ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	a.renderLogin(w, r, "")
}

// postLogin delegates credential verification to the backend.  Nothing in
// this binary can confirm a password on its own.
func (a *Admin) postLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		a.renderLogin(w, r, "Please enter a username and password.")
		return
	}

	if err := a.client.Login(r.Context(), username, password); err != nil {
		msg := "Login failed. Please try again."
		if ae, ok := backend.AsAPIError(err); ok {
			if ae.Status == 401 || ae.Status == 403 {
				msg = "Invalid username or password."
			} else {
				msg = errclass.Classify(ae).Message
			}
		}
		zap.S().Warnw("admin login rejected", "user", username)
		a.renderLogin(w, r, msg)
		return
	}

	session.LoginAdmin(w, r, username)
	zap.S().Infow("admin login", "user", username)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (a *Admin) postLogout(w http.ResponseWriter, r *http.Request) {
	session.Logout(w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (a *Admin) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctx := core.NewContext(a.site, w, r)
	ctx.Head.SetTitle("Admin Login | " + a.site.Name)

	data := map[string]any{
		"Ctx":   ctx,
		"Site":  ctx.Site,
		"Head":  ctx.Head,
		"Error": errMsg,
	}
	if err := view.Render(ctx, w, "admin", "login", data, view.CacheSkip); err != nil {
		zap.S().Errorw("admin login render failed", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// -----------------------------------------------------------------------------
// Dashboard
// -----------------------------------------------------------------------------

// getDashboard fetches the selected tab's leads, applies search and status
// filters locally, and renders the table.
func (a *Admin) getDashboard(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != "contacts" {
		tab = "appointments"
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := r.URL.Query().Get("status")

	ctx := core.NewContext(a.site, w, r)
	ctx.Head.SetTitle("Dashboard | " + a.site.Name)
	user, _ := session.AdminUser(r)

	data := map[string]any{
		"Ctx":      ctx,
		"Site":     ctx.Site,
		"Head":     ctx.Head,
		"User":     user,
		"Tab":      tab,
		"Query":    query,
		"Status":   status,
		"Statuses": statusesFor(tab),
	}

	var fetchErr error
	switch tab {
	case "contacts":
		rows, err := backend.RetryWithBackoff(r.Context(), func(c context.Context) ([]backend.Contact, error) {
			return a.client.ListContacts(c)
		})
		fetchErr = err
		data["Contacts"] = filterContacts(rows, query, status)
	default:
		rows, err := backend.RetryWithBackoff(r.Context(), func(c context.Context) ([]backend.Appointment, error) {
			return a.client.ListAppointments(c)
		})
		fetchErr = err
		data["Appointments"] = filterAppointments(rows, query, status)
	}

	if fetchErr != nil {
		msg := "Could not load leads."
		if ae, ok := backend.AsAPIError(fetchErr); ok {
			msg = errclass.Classify(ae).Message
			if ae.Status == 401 {
				session.Logout(w, r)
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
		}
		zap.S().Errorw("admin list fetch failed", "tab", tab, "err", fetchErr)
		data["Error"] = msg
	}

	if err := view.Render(ctx, w, "admin", "dashboard", data, view.CacheSkip); err != nil {
		zap.S().Errorw("admin dashboard render failed", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// postStatus updates one lead's status and bounces back to the dashboard.
func (a *Admin) postStatus(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		status := r.PostForm.Get("status")

		switch kind {
		case "appointments":
			if !catalog.ValidAppointmentStatus(status) {
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
			err = a.client.UpdateAppointmentStatus(r.Context(), id, status)
		case "contacts":
			if !catalog.ValidContactStatus(status) {
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
			err = a.client.UpdateContactStatus(r.Context(), id, status)
		}

		if err != nil {
			zap.S().Errorw("admin status update failed", "kind", kind, "id", id, "err", err)
		}

		back := r.Referer()
		if back == "" {
			back = "/admin"
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// -----------------------------------------------------------------------------
// Filtering and display helpers
// -----------------------------------------------------------------------------

// statusesFor returns the status options for the active tab's filter and
// per-row selects.
func statusesFor(tab string) []catalog.Option {
	if tab == "contacts" {
		return catalog.ContactStatuses()
	}
	return catalog.AppointmentStatuses()
}

// filterAppointments applies the search string (name, email, phone) and the
// status filter, stripping HTML from free-text fields as it copies.
func filterAppointments(rows []backend.Appointment, query, status string) []backend.Appointment {
	q := strings.ToLower(query)
	out := make([]backend.Appointment, 0, len(rows))
	for _, a := range rows {
		if status != "" && a.Status != status {
			continue
		}
		if q != "" && !matches(q, a.Name, a.Email, a.Phone) {
			continue
		}
		a.Name = validate.StripHTML(a.Name)
		a.Location = validate.StripHTML(a.Location)
		a.Message = validate.StripHTML(a.Message)
		out = append(out, a)
	}
	return out
}

// filterContacts mirrors filterAppointments for the contacts tab.
func filterContacts(rows []backend.Contact, query, status string) []backend.Contact {
	q := strings.ToLower(query)
	out := make([]backend.Contact, 0, len(rows))
	for _, c := range rows {
		if status != "" && c.Status != status {
			continue
		}
		if q != "" && !matches(q, c.Name, c.Email, c.Phone) {
			continue
		}
		c.Name = validate.StripHTML(c.Name)
		c.Subject = validate.StripHTML(c.Subject)
		c.Message = validate.StripHTML(c.Message)
		out = append(out, c)
	}
	return out
}

// matches reports whether any candidate contains the lower-cased query.
func matches(q string, candidates ...string) bool {
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}
