package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbaid4/testwecicada/internal/services"
)

// ========================
// SIGNUP HANDLER
// ========================

func (a *API) Signup(c *gin.Context) {
	var body services.SignupInput
	if !bindJSON(c, &body) {
		return
	}

	user, err := a.svc.Identity.Signup(c.Request.Context(), body)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"user":    user,
	})
}

// ========================
// LOGIN HANDLER
// ========================

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := a.svc.Identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
