package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"sparked/models"
)

// UpdateProfileRequest is the allow-list of updatable profile fields.
// Credential and relation state are deliberately not reachable through
// this path.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName" form:"firstName"`
	LastName    *string `json:"lastName" form:"lastName"`
	Genre       *string `json:"genre" form:"genre" binding:"omitempty,oneof=male female other"`
	Dob         *string `json:"dob" form:"dob"`
	Preference  *string `json:"preference" form:"preference" binding:"omitempty,oneof=male female other all"`
	Description *string `json:"description" form:"description"`
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.DB.FindUserByID(ctx, userID)
	if err != nil {
		h.internalError(c, "get me: lookup failed", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe applies a partial profile update and returns the updated
// user. Accepts JSON or multipart; an avatar file rides along on the
// multipart path.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
			return
		}
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	set := bson.M{}
	if req.FirstName != nil {
		set["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["lastName"] = *req.LastName
	}
	if req.Genre != nil {
		set["genre"] = *req.Genre
	}
	if req.Dob != nil {
		set["dob"] = *req.Dob
	}
	if req.Preference != nil {
		set["preference"] = *req.Preference
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}

	if file, header, err := c.Request.FormFile("avatar"); err == nil {
		defer file.Close()
		url, err := h.Avatars.SaveAvatar(ctx, userID.Hex(), file, header)
		if err != nil {
			h.internalError(c, "update me: avatar upload failed", err)
			return
		}
		set["avatar"] = url
	}

	if len(set) == 0 {
		user, err := h.DB.FindUserByID(ctx, userID)
		if err != nil {
			h.internalError(c, "update me: lookup failed", err)
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	user, err := h.DB.UpdateUserFields(ctx, userID, set)
	if err != nil {
		h.internalError(c, "update me: update failed", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListCandidates returns up to 50 likeable users for the requester:
// self and already-liked users excluded, preference filter applied.
func (h *Handler) ListCandidates(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	requester, err := h.DB.FindUserByID(ctx, userID)
	if err != nil {
		h.internalError(c, "list candidates: lookup failed", err)
		return
	}
	if requester == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	candidates, err := h.Match.ListCandidates(ctx, requester)
	if err != nil {
		h.internalError(c, "list candidates: query failed", err)
		return
	}

	c.JSON(http.StatusOK, publicViews(candidates))
}

// ListAllUsers is the debug listing: everyone but the requester, no
// preference filter, same cap.
func (h *Handler) ListAllUsers(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.Match.ListAll(ctx, userID)
	if err != nil {
		h.internalError(c, "list all users: query failed", err)
		return
	}

	c.JSON(http.StatusOK, publicViews(users))
}

func publicViews(users []models.User) []models.PublicUser {
	views := make([]models.PublicUser, len(users))
	for i, u := range users {
		views[i] = u.Public()
	}
	return views
}
