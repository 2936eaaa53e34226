package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbaid4/testwecicada/internal/services"
)

func (a *API) CreateSupplier(c *gin.Context) {
	var body services.SupplierInput
	if !bindJSON(c, &body) {
		return
	}
	sp, err := a.svc.Suppliers.Create(c.Request.Context(), body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

func (a *API) ListSuppliers(c *gin.Context) {
	suppliers, err := a.svc.Suppliers.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (a *API) GetSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sp, err := a.svc.Suppliers.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

func (a *API) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body services.SupplierInput
	if !bindJSON(c, &body) {
		return
	}
	sp, err := a.svc.Suppliers.Update(c.Request.Context(), id, body)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

func (a *API) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.svc.Suppliers.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supplier deleted"})
}
