package controllers

import (
	"strings"
	"time"

	"dsamentor/backend/config"
	"dsamentor/backend/middleware"
	"dsamentor/backend/models"
	"dsamentor/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	Name              string `json:"name"`
	PreferredLanguage string `json:"preferredLanguage"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFAToken string `json:"mfaToken"`
}

// userPayload strips secrets down to the fields the client renders.
func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":                     user.ID,
		"email":                  user.Email,
		"name":                   user.Name,
		"preferredLanguage":      user.PreferredLanguage,
		"currentDay":             user.CurrentDay,
		"streak":                 user.Streak,
		"mfaEnabled":             user.MFAEnabled,
		"totalProblemsCompleted": user.TotalProblemsCompleted,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return utils.BadRequest(c, "Email, password, and name are required")
	}
	if len(input.Password) < 6 {
		return utils.BadRequest(c, "Password must be at least 6 characters long")
	}
	if input.PreferredLanguage == "" {
		input.PreferredLanguage = models.DefaultLanguage
	}
	if !models.IsValidLanguage(input.PreferredLanguage) {
		return utils.BadRequest(c, "Unsupported preferred language")
	}

	var count int64
	if err := ac.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not check existing users")
	}
	if count > 0 {
		return utils.BadRequest(c, "User already exists with this email")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	now := time.Now()
	user := models.User{
		Email:             input.Email,
		PasswordHash:      hashedPassword,
		Name:              input.Name,
		PreferredLanguage: input.PreferredLanguage,
		CurrentDay:        1,
		Streak:            0,
		LastActiveDate:    now,
		JoinDate:          now,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Email, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"token": token,
		"user":  userPayload(&user),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user, enforcing the second factor when enabled
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	// Unknown email and wrong password produce the same response so the
	// caller cannot probe which emails are registered.
	var user models.User
	if err := ac.DB.Where("email = ?", normalizeEmail(input.Email)).First(&user).Error; err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	if user.MFAEnabled {
		if input.MFAToken == "" {
			// Not a failed attempt: the client should prompt for a code
			// and retry with the same credentials.
			return utils.Success(c, fiber.StatusOK, fiber.Map{
				"requiresMFA": true,
				"message":     "MFA token required",
			})
		}
		if !utils.ValidateTOTPCode(user.MFASecret, input.MFAToken) {
			return utils.Unauthorized(c, "Invalid MFA token")
		}
	}

	user.UpdateStreak(time.Now())
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Email, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  userPayload(&user),
	})
}

// SetupMFA godoc
// @Summary Begin second-factor setup
// @Description Generates a fresh TOTP secret and provisioning URI; the factor stays inactive until verified
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/setup-mfa [post]
func (ac *AuthController) SetupMFA(c *fiber.Ctx) error {
	var user models.User
	if err := ac.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	secret, provisioningURI, err := utils.GenerateTOTPSecret(user.Email)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate MFA secret")
	}

	// Re-running setup before verification replaces the pending secret.
	user.MFASecret = secret
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not save MFA secret")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"secret":         secret,
		"otpauthUrl":     provisioningURI,
		"manualEntryKey": secret,
	})
}

// VerifyMFA godoc
// @Summary Confirm second-factor setup
// @Description Validates a code against the pending secret and activates the second factor
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/verify-mfa [post]
func (ac *AuthController) VerifyMFA(c *fiber.Ctx) error {
	type VerifyInput struct {
		Token string `json:"token"`
	}

	var input VerifyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := ac.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}
	if user.MFASecret == "" {
		return utils.BadRequest(c, "MFA setup not initiated")
	}

	if !utils.ValidateTOTPCode(user.MFASecret, input.Token) {
		// Pending secret stays in place so the caller can retry.
		return utils.BadRequest(c, "Invalid token")
	}

	user.MFAEnabled = true
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not enable MFA")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "MFA enabled successfully",
	})
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's account without secrets
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	var user models.User
	if err := ac.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user": userPayload(&user),
	})
}
