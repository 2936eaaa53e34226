// Package handlers exposes the services over gin.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbaid4/testwecicada/internal/auth"
	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/http/middleware"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/services"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// API holds what the handlers need. Build it once and register it with
// SetupRoutes.
type API struct {
	svc            *services.Services
	guard          *auth.Guard
	db             Pinger
	log            logging.Logger
	maxUploadBytes int64
}

type Deps struct {
	Services       *services.Services
	Guard          *auth.Guard
	DB             Pinger
	Log            logging.Logger
	MaxUploadBytes int64
}

func New(d Deps) *API {
	return &API{
		svc:            d.Services,
		guard:          d.Guard,
		db:             d.DB,
		log:            d.Log,
		maxUploadBytes: d.MaxUploadBytes,
	}
}

// -----------------------------
// Helper functions
// -----------------------------

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"message": msg})
}

// fail maps a service error onto a status code. Unexpected errors are logged
// and hidden from the client.
func (a *API) fail(c *gin.Context, err error) {
	for _, m := range []struct {
		sentinel error
		code     int
	}{
		{common.ErrBadRequest, http.StatusBadRequest},
		{common.ErrUnauthorized, http.StatusUnauthorized},
		{common.ErrNotFound, http.StatusNotFound},
		{common.ErrConflict, http.StatusConflict},
	} {
		if errors.Is(err, m.sentinel) {
			jsonError(c, m.code, publicMessage(err, m.sentinel))
			return
		}
	}

	_ = c.Error(err)
	a.log.Error(c.Request.Context(), "request failed",
		"request_id", middleware.RequestIDFrom(c.Request.Context()),
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	jsonError(c, http.StatusInternalServerError, "internal server error")
}

// publicMessage drops the sentinel prefix added by fmt.Errorf("%w: ...").
func publicMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		jsonError(c, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// currentUser expects the guard middleware to have run.
func currentUser(c *gin.Context) (uint, bool) {
	uid, ok := auth.UserID(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return uid, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}
