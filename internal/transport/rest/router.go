package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Cases    *CaseHandler
	Workflow *WorkflowHandler
	Audit    *AuditHandler
}

// NewRouter builds the route table. Middleware is applied by the caller.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/cases", h.Cases.List)
	mux.HandleFunc("POST /api/cases", h.Cases.Create)
	mux.HandleFunc("GET /api/cases/{caseID}", h.Cases.Get)
	mux.HandleFunc("PATCH /api/cases/{caseID}", h.Cases.Update)
	mux.HandleFunc("GET /api/cases/{caseID}/export", h.Cases.Export)
	mux.HandleFunc("POST /api/cases/{caseID}/documents", h.Cases.Upload)
	mux.HandleFunc("GET /api/cases/{caseID}/documents/{documentID}", h.Cases.ViewDocument)

	mux.HandleFunc("POST /api/cases/{caseID}/workflow/run", h.Workflow.Run)
	mux.HandleFunc("GET /api/workflow/status", h.Workflow.Status)
	mux.HandleFunc("GET /api/workflow/watch", h.Workflow.Watch)

	mux.HandleFunc("GET /api/audit", h.Audit.List)

	return mux
}
