package handler

import (
	"log/slog"
	"net/http"

	"beacon/internal/domain/models"
	"beacon/internal/domain/services"
	"beacon/internal/httputil"
)

// projectListVersion is the schema version of the list response
const projectListVersion = 1

// ProjectHandler handles project admin HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes mounts the project routes on mux
func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/projects", h.ListProjects)
	mux.HandleFunc("POST /api/admin/projects", h.CreateProject)
	mux.HandleFunc("POST /api/admin/projects/validate", h.ValidateProjectID)
	mux.HandleFunc("GET /api/admin/projects/{id}", h.GetProject)
	mux.HandleFunc("PUT /api/admin/projects/{id}", h.UpdateProject)
	mux.HandleFunc("DELETE /api/admin/projects/{id}", h.DeleteProject)
	mux.HandleFunc("GET /api/admin/projects/{id}/users", h.GetUsersWithAccess)
}

type projectListResponse struct {
	Version  int              `json:"version"`
	Projects []models.Project `json:"projects"`
}

type validateIDRequest struct {
	ID string `json:"id"`
}

// ListProjects returns every project
// GET /api/admin/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetProjects(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projectListResponse{
		Version:  projectListVersion,
		Projects: projects,
	})
}

// GetProject returns a single project
// GET /api/admin/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// CreateProject creates a new project
// POST /api/admin/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.Project
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &req, user)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// UpdateProject replaces a project. The id in the path overrides any id
// in the body.
// PUT /api/admin/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.Project
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = r.PathValue("id")

	project, err := h.projectService.UpdateProject(r.Context(), &req, user)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project
// DELETE /api/admin/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), r.PathValue("id"), user); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ValidateProjectID checks that an id is well formed and unused
// POST /api/admin/projects/validate
func (h *ProjectHandler) ValidateProjectID(w http.ResponseWriter, r *http.Request) {
	var req validateIDRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.projectService.ValidateID(r.Context(), req.ID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetUsersWithAccess lists the users holding a role on the project
// GET /api/admin/projects/{id}/users
func (h *ProjectHandler) GetUsersWithAccess(w http.ResponseWriter, r *http.Request) {
	users, err := h.projectService.GetUsersWithAccess(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

// requireUser writes a 401 when the request carries no authenticated user
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := httputil.GetUser(r)
	if user == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return user, true
}
