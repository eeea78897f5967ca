package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/middleware"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/services"
)

// AuthServiceAPI is the surface of the auth service the controller depends
// on.
type AuthServiceAPI interface {
	Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error)
	Me(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthController struct {
	service AuthServiceAPI
}

func NewAuthController(service AuthServiceAPI) *AuthController {
	return &AuthController{service: service}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	response, err := ac.service.Register(c.Request.Context(), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	response, err := ac.service.Login(c.Request.Context(), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, svcErr := ac.service.Me(c.Request.Context(), userID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}
