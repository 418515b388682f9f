package controllers

import (
	"net/http"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgLoginSuccessful = "Login successful"
	msgLoggedOut       = "Successfully logged out."
	msgAccountDeleted  = "Account and all associated data have been deleted successfully."
)

type AuthController struct {
	accounts *services.AccountService
}

func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var data models.RegisterData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		badRequest(ctx, msgInvalidInput)
		return
	}

	user, err := c.accounts.Register(ctx.Request.Context(), data)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, user)
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		badRequest(ctx, msgInvalidInput)
		return
	}

	res, err := c.accounts.Login(ctx.Request.Context(), data)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":   msgLoginSuccessful,
		"token":     res.Token,
		"user_id":   res.UserID,
		"user_type": res.UserType,
	})
}

// Logout only acknowledges; tokens expire on their own.
func (c *AuthController) Logout(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}

func (c *AuthController) DeleteAccount(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.accounts.DeleteAccount(ctx.Request.Context(), user.UserID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAccountDeleted})
}
