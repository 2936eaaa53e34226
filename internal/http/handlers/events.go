package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbaid4/testwecicada/internal/services"
)

// -----------------------------
// Events
// -----------------------------

// Update and delete are open to any authenticated user, not only the owner.

func (a *API) CreateEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var body services.EventInput
	if !bindJSON(c, &body) {
		return
	}

	ev, err := a.svc.Events.Create(c.Request.Context(), userID, body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (a *API) ListEvents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	mine := false
	if v := c.Query("mine"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid mine flag")
			return
		}
		mine = b
	}

	events, err := a.svc.Events.List(c.Request.Context(), userID, mine)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (a *API) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ev, err := a.svc.Events.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (a *API) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body services.EventInput
	if !bindJSON(c, &body) {
		return
	}
	ev, err := a.svc.Events.Update(c.Request.Context(), id, body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (a *API) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.svc.Events.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (a *API) EventProgress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := a.svc.Events.Progress(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
