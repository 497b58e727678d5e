package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"sparked/config"
	"sparked/database"
	"sparked/matchmaking"
	"sparked/middleware"
	"sparked/storage"
)

const fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

const requestTimeout = 10 * time.Second

// Handler carries the dependencies every endpoint needs. It is built
// once at startup; there is no package-level state.
type Handler struct {
	DB      *database.DB
	Match   *matchmaking.Service
	Avatars storage.Store
	Log     *zap.Logger
	Cfg     config.Config
}

func New(db *database.DB, match *matchmaking.Service, avatars storage.Store, log *zap.Logger, cfg config.Config) *Handler {
	return &Handler{
		DB:      db,
		Match:   match,
		Avatars: avatars,
		Log:     log,
		Cfg:     cfg,
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUserID resolves the authenticated user id set by the JWT
// middleware. A missing or malformed id means the token was minted for
// a bad subject; the request is rejected here.
func (h *Handler) currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// internalError logs the real failure and sends a generic body; details
// never reach the client.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
