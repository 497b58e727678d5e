package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sparked/matchmaking"
)

type LikeRequest struct {
	TargetID string `json:"targetId" binding:"required"`
}

// Like records requester -> target and reports whether the pair just
// matched. Re-liking is harmless and answers "Liked" again.
func (h *Handler) Like(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetId is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.Match.RecordLike(ctx, userID, req.TargetID)
	switch {
	case errors.Is(err, matchmaking.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	case errors.Is(err, matchmaking.ErrSelfLike):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot like yourself"})
		return
	case errors.Is(err, matchmaking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	case err != nil:
		h.internalError(c, "like: record failed", err)
		return
	}

	body := gin.H{"message": result.Message}
	if result.Match != nil {
		body["match"] = result.Match
		h.Log.Info("match formed",
			zap.String("userA", result.Match.UserA.Hex()),
			zap.String("userB", result.Match.UserB.Hex()))
	}
	c.JSON(http.StatusOK, body)
}
