package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"jobbuddy/models"
	"jobbuddy/services"
	"jobbuddy/utils"
)

type AuthController struct {
	UserModel  *models.UserModel
	JWTService *services.JWTService
}

func NewAuthController(db *sql.DB, jwtService *services.JWTService) *AuthController {
	return &AuthController{
		UserModel:  models.NewUserModel(db),
		JWTService: jwtService,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileRequest struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Address     string `json:"address"`
	LinkedInURL string `json:"linkedin_url"`
	ResumePath  string `json:"resume_path"`
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request body", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to hash password", err)
		return
	}

	user, err := c.UserModel.Create(req.Email, string(hash), req.FullName)
	if err != nil {
		utils.BadRequestError(ctx, "Could not create user", err)
		return
	}

	token, err := c.JWTService.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to generate token", err)
		return
	}

	utils.SuccessResponse(ctx, http.StatusCreated, "User registered", gin.H{"user": user, "token": token})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request body", err)
		return
	}

	user, err := c.UserModel.GetByEmail(req.Email)
	if err != nil {
		utils.ErrorResponseWithCode(ctx, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.ErrorResponseWithCode(ctx, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := c.JWTService.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to generate token", err)
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Logged in", gin.H{"user": user, "token": token})
}

func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")
	user, err := c.UserModel.GetByID(userID)
	if err != nil {
		utils.NotFoundError(ctx, "User not found")
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Profile", user)
}

func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")
	var req ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request body", err)
		return
	}

	err := c.UserModel.UpdateProfile(userID, req.FullName, req.Phone, req.City, req.State, req.ZipCode, req.Address, req.LinkedInURL, req.ResumePath)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to update profile", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Profile updated", nil)
}
