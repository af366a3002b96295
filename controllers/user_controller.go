// File: /controllers/user_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"localevents-api/config"
	"localevents-api/models"
	"localevents-api/services"
	"localevents-api/utils"
)

type UserController struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *services.TokenService
	email  *services.EmailService
}

func NewUserController(db *gorm.DB, cfg *config.Config, tokens *services.TokenService, email *services.EmailService) *UserController {
	return &UserController{db: db, cfg: cfg, tokens: tokens, email: email}
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SignUp handles POST /user.
func (uc *UserController) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	var existing models.User
	if err := uc.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Email or username already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendServerError(c, "Failed to hash password", err)
		return
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}

	if err := uc.db.Create(&user).Error; err != nil {
		utils.SendServerError(c, "Failed to create user", err)
		return
	}

	token, err := uc.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		utils.SendServerError(c, "Failed to generate token", err)
		return
	}

	// SMTP trouble must not fail the sign-up
	go uc.email.SendWelcomeEmail(user.Email, user.Username)

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// SignIn handles POST /user/signin.
func (uc *UserController) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	var user models.User
	if err := uc.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, err := uc.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		utils.SendServerError(c, "Failed to generate token", err)
		return
	}

	refreshToken, err := uc.tokens.IssueRefreshToken(c.Request.Context(), user.ID)
	if err != nil {
		utils.SendServerError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout handles POST /user/logout by revoking the refresh token. Access
// tokens simply expire; there is no blacklist.
func (uc *UserController) Logout(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	if err := uc.tokens.RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		utils.SendServerError(c, "Failed to log out", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// RefreshToken handles POST /user/refresh-token. The refresh token rotates:
// the presented one is consumed and a new pair is returned.
func (uc *UserController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	userID, newRefresh, err := uc.tokens.RotateRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	accessToken, err := uc.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		utils.SendServerError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": newRefresh,
	})
}

// GetProfile handles GET /user/profile and includes the user's own events.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.Preload("Events").First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.SendData(c, user)
}

// UpdateProfile handles PATCH /user/profile with partial semantics. Edits do
// not rewrite the creator snapshot on existing events.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Photo    *string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrorsFromBinding(err))
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			utils.SendServerError(c, "Failed to update profile", err)
			return
		}
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.SendData(c, user)
}

// UploadImage handles POST /user/profile/image (multipart). The file lands
// under the configured upload dir and the profile photo points at it.
func (uc *UserController) UploadImage(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("image")
	if err != nil {
		utils.SendFieldErrors(c, []utils.FieldError{{Field: "image", Message: "is required"}})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		utils.SendFieldErrors(c, []utils.FieldError{{Field: "image", Message: "unsupported file type"}})
		return
	}

	if err := os.MkdirAll(uc.cfg.UploadDir, 0o755); err != nil {
		utils.SendServerError(c, "Failed to store image", err)
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uc.cfg.UploadDir, filename)); err != nil {
		utils.SendServerError(c, "Failed to store image", err)
		return
	}

	photo := "/uploads/" + filename
	if err := uc.db.Model(&models.User{}).Where("id = ?", userID).Update("photo", photo).Error; err != nil {
		utils.SendServerError(c, "Failed to update profile", err)
		return
	}

	utils.SendData(c, gin.H{"photo": photo})
}
