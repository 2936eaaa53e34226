package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Content    string `json:"content"`
}

func (a *API) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var body sendMessageRequest
	if !bindJSON(c, &body) {
		return
	}
	msg, err := a.svc.Messages.Send(c.Request.Context(), userID, body.ReceiverID, body.Content)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (a *API) Inbox(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	msgs, err := a.svc.Messages.Inbox(c.Request.Context(), userID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (a *API) Thread(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	other, ok := parseID(c, "userId")
	if !ok {
		return
	}
	msgs, err := a.svc.Messages.Thread(c.Request.Context(), userID, other)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (a *API) Conversations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	convs, err := a.svc.Messages.Conversations(c.Request.Context(), userID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}
