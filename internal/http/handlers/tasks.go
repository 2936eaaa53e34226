package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbaid4/testwecicada/internal/services"
)

// -----------------------------
// Tasks
// -----------------------------

func (a *API) CreateTask(c *gin.Context) {
	var body services.TaskInput
	if !bindJSON(c, &body) {
		return
	}
	task, err := a.svc.Tasks.Create(c.Request.Context(), body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (a *API) ListTasks(c *gin.Context) {
	var eventID uint
	if v := c.Query("eventId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid eventId")
			return
		}
		eventID = uint(id)
	}
	tasks, err := a.svc.Tasks.List(c.Request.Context(), eventID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (a *API) GetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := a.svc.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (a *API) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body services.TaskInput
	if !bindJSON(c, &body) {
		return
	}
	task, err := a.svc.Tasks.Update(c.Request.Context(), id, body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (a *API) SetTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body statusRequest
	if !bindJSON(c, &body) {
		return
	}
	task, err := a.svc.Tasks.SetStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (a *API) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.svc.Tasks.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
