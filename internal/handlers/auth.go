package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"freelancehub/internal/flash"
	"freelancehub/internal/middleware"
	"freelancehub/internal/models"
	"freelancehub/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
	Flash     flash.Store
}

type RegisterReq struct {
	Username     string `json:"username" form:"username"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	IsFreelancer bool   `json:"is_freelancer" form:"is_freelancer"`
}

// RegisterPage serves the data the registration form needs: just any pending
// notices from a previous attempt.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"notices": popFlash(c, h.Flash),
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errors := FieldErrors{}

	if username == "" {
		errors.Add("username", "Username is required")
	}
	if email == "" {
		errors.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errors.Add("email", "Email format is not valid")
	}
	if password == "" {
		errors.Add("password", "Password is required")
	} else if len(password) < 6 {
		errors.Add("password", "Password must be at least 6 characters")
	}

	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	} else if err != gorm.ErrRecordNotFound {
		return fiber.ErrInternalServerError
	}

	if err := h.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("username", "Username is already taken")
		return validationFail(c, errs)
	} else if err != gorm.ErrRecordNotFound {
		return fiber.ErrInternalServerError
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	u := models.User{
		Username:     username,
		Email:        email,
		Password:     pw,
		IsFreelancer: req.IsFreelancer,
	}

	if err := h.DB.Create(&u).Error; err != nil {
		// Lost the unique-index race against a concurrent registration.
		errs := FieldErrors{}
		errs.Add("email", "Email or username is already registered")
		return validationFail(c, errs)
	}

	pushFlash(c, h.Flash, "success", "Account created! Please log in.")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Account created! Please log in.",
		"redirect": "/login",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":            u.ID,
				"username":      u.Username,
				"email":         u.Email,
				"is_freelancer": u.IsFreelancer,
			},
		},
	})
}

type LoginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginPage serves pending notices, e.g. the confirmation pushed by Register.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"notices": popFlash(c, h.Flash),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errors := FieldErrors{}
	if email == "" {
		errors.Add("email", "Email is required")
	}
	if password == "" {
		errors.Add("password", "Password is required")
	}

	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var u models.User
	err := h.DB.Where("email = ?", email).First(&u).Error

	// Same message whether the email is unknown or the password is wrong.
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	if !utils.CheckPassword(u.Password, password) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID, u.IsFreelancer, h.Expires)
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  "Logged in",
		"redirect": "/",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":            u.ID,
				"username":      u.Username,
				"email":         u.Email,
				"is_freelancer": u.IsFreelancer,
			},
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Logged out",
		"redirect": "/",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return fiber.ErrUnauthorized
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":            u.ID,
			"username":      u.Username,
			"email":         u.Email,
			"is_freelancer": u.IsFreelancer,
		},
	})
}
