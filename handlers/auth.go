package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sparked/middleware"
	"sparked/models"
)

type RegisterRequest struct {
	FirstName  string `json:"firstName" form:"firstName" binding:"required"`
	LastName   string `json:"lastName" form:"lastName" binding:"required"`
	Genre      string `json:"genre" form:"genre" binding:"required,oneof=male female other"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Password   string `json:"password" form:"password" binding:"required,min=6"`
	Dob        string `json:"dob" form:"dob" binding:"required"`
	Preference string `json:"preference" form:"preference" binding:"required,oneof=male female other all"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account from a JSON or multipart body. An avatar
// file, when present, is stored before the user document is written.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	existing, err := h.DB.FindUserByEmail(ctx, req.Email)
	if err != nil {
		h.internalError(c, "register: email lookup failed", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalError(c, "register: password hash failed", err)
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Genre:        req.Genre,
		Dob:          req.Dob,
		Preference:   req.Preference,
		CreatedAt:    time.Now().Unix(),
		LastSeen:     time.Now().Unix(),
	}

	if file, header, err := c.Request.FormFile("avatar"); err == nil {
		defer file.Close()
		url, err := h.Avatars.SaveAvatar(ctx, user.ID.Hex(), file, header)
		if err != nil {
			h.internalError(c, "register: avatar upload failed", err)
			return
		}
		user.Avatar = url
	}

	if err := h.DB.InsertUser(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}
		h.internalError(c, "register: insert failed", err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.internalError(c, "register: token issue failed", err)
		return
	}

	h.Log.Info("user registered", zap.String("userId", user.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID.Hex(),
			"firstName": user.FirstName,
			"avatar":    user.Avatar,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.DB.FindUserByEmail(ctx, req.Email)
	if err != nil {
		h.internalError(c, "login: email lookup failed", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.internalError(c, "login: token issue failed", err)
		return
	}

	if _, err := h.DB.UpdateUserFields(ctx, user.ID, bson.M{"lastSeen": time.Now().Unix()}); err != nil {
		h.Log.Warn("login: lastSeen update failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID.Hex(),
			"firstName": user.FirstName,
			"avatar":    user.Avatar,
		},
	})
}

func (h *Handler) issueToken(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(h.Cfg.JWTTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Cfg.JWTSecret))
}
