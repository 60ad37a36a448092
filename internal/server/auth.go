package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/essence/internal/identity"
)

// AuthHandler serves sign-up, sign-in and profile routes.
type AuthHandler struct {
	ids *identity.Service
}

func NewAuthHandler(ids *identity.Service) *AuthHandler {
	return &AuthHandler{ids: ids}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.ids.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"identity": id})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.ids.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, sess)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.ids.SignOut(bearerToken(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	RespondOK(c, gin.H{"identity": currentIdentity(c)})
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req identity.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.ids.UpdateProfile(c.Request.Context(), currentIdentity(c).ID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"identity": id})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	p, err := h.ids.StoredProfile(c.Request.Context(), currentIdentity(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *AuthHandler) PutProfile(c *gin.Context) {
	var req identity.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := currentIdentity(c).ID
	if err := h.ids.SaveStoredProfile(c.Request.Context(), id, req); err != nil {
		respondErr(c, err)
		return
	}
	p, err := h.ids.StoredProfile(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, p)
}
