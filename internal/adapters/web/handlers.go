package web

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"bizdesk/internal/app"
	webui "bizdesk/web"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService, the chi router, and the pending action store.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	pending    *pendingStore
	jwtSecret  string
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		pending:    newPendingStore(),
		jwtSecret:  jwtSecret,
		fileServer: http.FileServer(http.FS(staticFS)),
	}

	h.pending.startPurge(context.Background())

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public API) ─────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Static assets (public) ────────────────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Browser login (public HTML) ───────────────────────────────────────────
	r.Get("/login", h.servePage("login.html"))

	// ── App page (redirect to /login if unauthenticated) ──────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuthBrowser)
		r.Get("/", h.servePage("index.html"))
	})

	// ── Protected API routes (401 JSON if unauthenticated) ───────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Auth
		r.Get("/api/auth/me", h.me)

		// Assistant — natural-language entry point
		r.Post("/assistant", h.assistantQuery)
		r.Post("/assistant/confirm", h.assistantConfirm)

		// ── Employees ─────────────────────────────────────────────────────────
		r.Get("/api/businesses/{code}/employees", h.apiListEmployees)
		r.Post("/api/businesses/{code}/employees", h.apiCreateEmployee)
		r.Put("/api/businesses/{code}/employees/{id}", h.apiUpdateEmployee)
		r.Post("/api/businesses/{code}/employees/{id}/deactivate", h.apiDeactivateEmployee)

		// ── Invoices ──────────────────────────────────────────────────────────
		r.Get("/api/businesses/{code}/invoices", h.apiListInvoices)
		r.Post("/api/businesses/{code}/invoices", h.apiCreateInvoice)
		r.Get("/api/businesses/{code}/invoices/{number}", h.apiGetInvoice)
		r.Post("/api/businesses/{code}/invoices/{number}/status", h.apiSetInvoiceStatus)
		r.Post("/api/businesses/{code}/invoices/{number}/email", h.apiSendInvoiceEmail)

		// ── Appointments ──────────────────────────────────────────────────────
		r.Get("/api/businesses/{code}/appointments", h.apiListAppointments)
		r.Post("/api/businesses/{code}/appointments", h.apiCreateAppointment)
		r.Post("/api/businesses/{code}/appointments/suggest", h.apiSuggestAppointment)
		r.Post("/api/businesses/{code}/appointments/{id}/cancel", h.apiCancelAppointment)

		// ── Transactions & dashboard ──────────────────────────────────────────
		r.Get("/api/businesses/{code}/transactions", h.apiListTransactions)
		r.Post("/api/businesses/{code}/transactions", h.apiRecordTransaction)
		r.Get("/api/businesses/{code}/dashboard", h.apiDashboard)
	})

	h.router = r
	return r
}

// health returns service status and the loaded business code.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	business, err := h.svc.LoadDefaultBusiness(r.Context())
	businessCode := ""
	if err == nil && business != nil {
		businessCode = business.BusinessCode
	}

	type response struct {
		Status   string `json:"status"`
		Business string `json:"business"`
	}

	writeJSON(w, response{Status: "ok", Business: businessCode})
}

// servePage returns a handler that serves one embedded static page.
func (h *Handler) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = "/" + name
		h.fileServer.ServeHTTP(w, r)
	}
}

// businessCode extracts the {code} URL parameter.
func businessCode(r *http.Request) string {
	return chi.URLParam(r, "code")
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
