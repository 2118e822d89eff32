// handlers/auth.go - signup and login
package handlers

import (
	"log"
	"os"
	"strings"
	"time"

	"actionboard/database"
	"actionboard/models"
	"actionboard/services"
	"actionboard/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type RegisterRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	DateOfBirth       string `json:"date_of_birth" validate:"required"`
	AddressPrefecture string `json:"address_prefecture" validate:"required"`
	ReferralCode      string `json:"referral_code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Register creates a supporter account. Underage dates are rejected with
// the eligibility message; a valid referral code credits the referrer.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Validation failed: " + err.Error()})
	}

	if !models.IsValidPrefecture(req.AddressPrefecture) {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid prefecture"})
	}

	birth, err := utils.ParseBirthDate(req.DateOfBirth)
	if err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid date of birth format (expected YYYY-MM-DD)"})
	}
	if msg := utils.ValidateAge(birth); msg != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: *msg})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Database not available"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Email already registered"})
	}

	// Resolve the referrer before creating anything
	var referrer *models.User
	if req.ReferralCode != "" {
		valid, owner, err := services.IsValidReferralCode(db, req.ReferralCode)
		if err != nil {
			return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to verify referral code"})
		}
		if !valid {
			return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid referral code"})
		}

		used, err := services.IsEmailAlreadyUsedInReferral(db, email)
		if err != nil {
			return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to verify referral code"})
		}
		if used {
			return c.Status(400).JSON(AuthResponse{Success: false, Error: "This email was already used with a referral"})
		}
		referrer = owner
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to hash password"})
	}

	code, err := services.GenerateReferralCode(db)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
	}

	user := models.User{
		Name:              req.Name,
		Email:             email,
		Password:          string(hashedPassword),
		DateOfBirth:       req.DateOfBirth,
		AddressPrefecture: req.AddressPrefecture,
		ReferralCode:      &code,
	}
	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
	}

	if referrer != nil {
		season, err := services.GetCurrentSeason(db)
		if err == nil {
			// Referral credit failure must not block the signup itself
			if err := services.CreditReferral(db, referrer, email, season.ID); err != nil {
				log.Printf("referral credit failed for user %d: %v", referrer.ID, err)
			}
		}
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.Status(201).JSON(AuthResponse{Success: true, Token: token, User: &user})
}

// Login authenticates by email and password.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Email and password required"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Database not available"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid credentials"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: &user})
}

func generateToken(user models.User) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(time.Hour * 720).Unix(), // 30 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
