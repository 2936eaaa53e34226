package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbaid4/testwecicada/internal/services"
)

func (a *API) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := a.svc.Identity.Profile(c.Request.Context(), userID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var body services.ProfileUpdate
	if !bindJSON(c, &body) {
		return
	}
	user, err := a.svc.Identity.UpdateProfile(c.Request.Context(), userID, body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
