package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListMatches returns the requester's matches, newest first, each
// expanded with the counterpart's public card.
func (h *Handler) ListMatches(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	matches, err := h.Match.ListMatches(ctx, userID)
	if err != nil {
		h.internalError(c, "list matches: query failed", err)
		return
	}

	if len(matches) == 0 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	counterparts := make([]primitive.ObjectID, 0, len(matches))
	for _, m := range matches {
		counterparts = append(counterparts, m.Counterpart(userID))
	}

	users, err := h.DB.FindUsersByIDs(ctx, counterparts)
	if err != nil {
		h.internalError(c, "list matches: user join failed", err)
		return
	}

	userMap := make(map[primitive.ObjectID]gin.H, len(users))
	for _, u := range users {
		userMap[u.ID] = gin.H{
			"id":        u.ID.Hex(),
			"firstName": u.FirstName,
			"avatar":    u.Avatar,
		}
	}

	response := make([]gin.H, len(matches))
	for i, m := range matches {
		other := m.Counterpart(userID)

		card, exists := userMap[other]
		if !exists {
			card = gin.H{
				"id":        other.Hex(),
				"firstName": "Unknown User",
				"avatar":    fallbackAvatar,
			}
		}

		response[i] = gin.H{
			"id":        m.ID.Hex(),
			"createdAt": m.CreatedAt,
			"user":      card,
		}
	}

	c.JSON(http.StatusOK, response)
}
