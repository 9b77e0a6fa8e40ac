package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/diewo77/ezpay-app/internal/httpx"
	"github.com/diewo77/ezpay-app/internal/models"
	"github.com/diewo77/ezpay-app/internal/validation"
	"github.com/diewo77/ezpay-app/internal/view"
)

// TaskHandler is the simple task CRUD surface.
type TaskHandler struct {
	DB  *gorm.DB
	Dev bool
}

func NewTaskHandler(db *gorm.DB, dev bool) *TaskHandler {
	return &TaskHandler{DB: db, Dev: dev}
}

// Form: GET /addtask
func (h *TaskHandler) Form(w http.ResponseWriter, r *http.Request) {
	_ = view.Render(w, "addtask.html", map[string]any{"Title": "Add Task"})
}

// Create: POST /addtask
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = view.Render(w, "addtask.html", map[string]any{"Title": "Add Task", "ErrorMessage": "invalid form"})
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	description := r.FormValue("description")
	v := validation.Violations{}
	validation.Required("name", name, v)
	if !v.Empty() {
		_ = view.Render(w, "addtask.html", map[string]any{
			"Title":        "Add Task",
			"ErrorMessage": "name is required",
			"Description":  description,
		})
		return
	}
	task := models.Task{Name: name, Description: description}
	if err := h.DB.Create(&task).Error; err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	_ = view.Render(w, "task_submitted.html", map[string]any{"Title": "Task Saved", "Task": task})
}

// ListJSON: GET /tasks, newest first
func (h *TaskHandler) ListJSON(w http.ResponseWriter, r *http.Request) {
	var tasks []models.Task
	if err := h.DB.Order("created_at desc").Find(&tasks).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_tasks", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, tasks)
}

// ListPage: GET /taskspage, newest first
func (h *TaskHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	var tasks []models.Task
	if err := h.DB.Order("created_at desc").Find(&tasks).Error; err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	_ = view.Render(w, "taskspage.html", map[string]any{"Title": "Tasks", "Tasks": tasks})
}

// Delete: POST /tasks/{id}/delete. An unknown or malformed id is a no-op; the
// client is redirected back to the list either way.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.Atoi(chi.URLParam(r, "id")); err == nil && id > 0 {
		if err := h.DB.Delete(&models.Task{}, id).Error; err != nil {
			RenderError(w, http.StatusInternalServerError, err, h.Dev)
			return
		}
	}
	http.Redirect(w, r, "/taskspage", http.StatusSeeOther)
}
