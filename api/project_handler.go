package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"gorm.io/datatypes"
)

type projectHandler struct {
	resourceHandler[models.Project, *models.Project]
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	return projectHandler{
		resourceHandler: newResourceHandler[models.Project]("project", projectRepo),
		projectRepo:     projectRepo,
	}
}

// getAllProjects retrieves all projects, optionally for one client
// @Summary Get all projects
// @Description Retrieves all projects. With ?client=<name> only that client's projects.
// @Tags Projects
// @Produce json
// @Param client query string false "Client name"
// @Success 200 {array} models.Project
// @Failure 500 {object} ErrorResponse
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			projects []*models.Project
			err      error
		)
		if clientName := r.URL.Query().Get("client"); clientName != "" {
			projects, err = h.projectRepo.FindByClient(clientName)
		} else {
			projects, err = h.projectRepo.FindAll()
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, nonNil(projects))
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return h.create(func(p *models.Project) {
		if p.Images == nil {
			p.Images = datatypes.JSONSlice[string]{}
		}
	})
}

// updateProject updates an existing project
// @Summary Update project
// @Tags Projects
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return h.update(nil)
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Security BearerAuth
// @Success 200 {object} StatusResponse
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return h.delete()
}
