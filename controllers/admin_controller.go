package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/services"
)

// AdminServiceAPI is the surface of the admin service the controller depends
// on.
type AdminServiceAPI interface {
	Dashboard(ctx context.Context) (*services.DashboardResponse, error)
}

type AdminController struct {
	service AdminServiceAPI
}

func NewAdminController(service AdminServiceAPI) *AdminController {
	return &AdminController{service: service}
}

// GetDashboard returns the back-office stats. Admin only; enforced at the
// route.
func (ac *AdminController) GetDashboard(c *gin.Context) {
	response, err := ac.service.Dashboard(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
