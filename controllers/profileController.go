package controllers

import (
	"net/http"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	accounts *services.AccountService
}

func NewProfileController(accounts *services.AccountService) *ProfileController {
	return &ProfileController{accounts: accounts}
}

func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	profile, err := c.accounts.GetProfile(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, profile)
}

func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var data models.ProfileUpdate
	if err := ctx.ShouldBindJSON(&data); err != nil {
		badRequest(ctx, msgInvalidInput)
		return
	}

	if _, err := c.accounts.UpdateProfile(ctx.Request.Context(), user.UserID, data); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Profile updated"})
}

func (c *ProfileController) AddAddress(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		badRequest(ctx, msgInvalidInput)
		return
	}

	created, err := c.accounts.AddAddress(ctx.Request.Context(), user.UserID, address)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, created)
}

func (c *ProfileController) ListAddresses(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	addresses, err := c.accounts.ListAddresses(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, addresses)
}

func (c *ProfileController) DeleteAddress(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	addressID, ok := idParam(ctx, "addressId")
	if !ok {
		return
	}

	if err := c.accounts.DeleteAddress(ctx.Request.Context(), user.UserID, addressID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted"})
}
