package routes

import (
	"net/http"

	"vinyasaclub/handlers"
	"vinyasaclub/middleware"
	"vinyasaclub/models"
	"vinyasaclub/utils"
)

var securityHeaders = map[string]string{
	"X-Content-Type-Options":            "nosniff",
	"X-Frame-Options":                   "SAMEORIGIN",
	"Referrer-Policy":                   "no-referrer",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
	"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
}

// withSecurityHeaders sets the hardening headers on every response.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range securityHeaders {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Handlers struct {
	Sessions    middleware.Verifier
	User        *handlers.UserHandler
	Member      *handlers.MemberHandler
	Attendance  *handlers.AttendanceHandler
	Performance *handlers.PerformanceHandler
	Dashboard   *handlers.DashboardHandler
	Report      *handlers.ReportHandler
}

// chain applies mws so that the first one runs first.
func chain(h http.HandlerFunc, mws ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// SetupRoutes builds the API. Every route is also reachable under /api.
func SetupRoutes(h Handlers) http.Handler {
	mux := http.NewServeMux()

	session := middleware.RequireSession(h.Sessions)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleInstructor)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	handle := func(pattern string, fn http.HandlerFunc, mws ...func(http.HandlerFunc) http.HandlerFunc) {
		mux.Handle(pattern, handlers.RecoverWrapper(chain(fn, mws...)))
	}

	handle("GET /health", handlers.Health)

	// Auth routes
	handle("POST /auth/login", h.User.Login)
	handle("GET /auth/me", h.User.Me, session)

	// Member routes
	handle("GET /members", h.Member.ListMembers, session)
	handle("POST /members", h.Member.CreateMember, session, staff)
	handle("DELETE /members/{id}", h.Member.DeleteMember, session, adminOnly)

	// Attendance routes
	handle("GET /attendance", h.Attendance.ListAttendance, session)
	handle("POST /attendance/bulk", h.Attendance.BulkSetAttendance, session, staff)

	// Performance routes
	handle("GET /performance", h.Performance.ListPerformance, session)
	handle("POST /performance", h.Performance.CreatePerformance, session, staff)

	handle("GET /dashboard/summary", h.Dashboard.Summary, session)

	if h.Report != nil {
		handle("GET /reports/attendance", h.Report.AttendanceReport, session, staff)
	}

	// Unknown paths and unsupported methods both land here.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "Not found")
	})

	mux.Handle("/api/", http.StripPrefix("/api", mux))

	return withSecurityHeaders(withCORS(mux))
}
