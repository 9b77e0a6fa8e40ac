package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/ezpay-app/internal/models"
)

func TestTaskCreateAndConfirmationPage(t *testing.T) {
	gdb := setupHandlerDB(t)
	h := NewTaskHandler(gdb, true)

	w := postForm(t, h.Create, "/addtask", url.Values{
		"name":        {"Buy milk"},
		"description": {"semi-skimmed"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Task Saved")
	require.Contains(t, w.Body.String(), "Buy milk")

	var task models.Task
	require.NoError(t, gdb.First(&task).Error)
	require.Equal(t, "Buy milk", task.Name)
	require.Equal(t, "semi-skimmed", task.Description)
}

func TestTaskCreateRequiresName(t *testing.T) {
	gdb := setupHandlerDB(t)
	h := NewTaskHandler(gdb, true)

	w := postForm(t, h.Create, "/addtask", url.Values{
		"name":        {"   "},
		"description": {"kept on re-render"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "name is required")
	require.Contains(t, w.Body.String(), "kept on re-render")

	var n int64
	require.NoError(t, gdb.Model(&models.Task{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestTaskListJSONNewestFirst(t *testing.T) {
	gdb := setupHandlerDB(t)
	h := NewTaskHandler(gdb, true)
	older := models.Task{Name: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Task{Name: "newer"}
	require.NoError(t, gdb.Create(&older).Error)
	require.NoError(t, gdb.Create(&newer).Error)

	w := httptest.NewRecorder()
	h.ListJSON(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	require.Equal(t, "newer", tasks[0].Name)
	require.Equal(t, "older", tasks[1].Name)
}

func TestTaskListPage(t *testing.T) {
	gdb := setupHandlerDB(t)
	h := NewTaskHandler(gdb, true)
	require.NoError(t, gdb.Create(&models.Task{Name: "visible task"}).Error)

	w := httptest.NewRecorder()
	h.ListPage(w, httptest.NewRequest(http.MethodGet, "/taskspage", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "visible task")
}
