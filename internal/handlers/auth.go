package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gigflow/internal/mail"
	"gigflow/internal/models"
	"gigflow/internal/utils"
)

type AuthHandler struct {
	DB            *gorm.DB
	Mail          *mail.Enqueuer
	JWTSecret     string
	CookieName    string
	ExpiresMin    int
	OTPExpiresMin int
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // client / freelancer, defaults to client
}

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// Register creates an unverified account and queues the OTP email. An
// existing unverified account with the same email is replaced so the user
// can restart a stalled verification; a verified account blocks the email.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	role := models.RoleClient
	if strings.ToLower(strings.TrimSpace(req.Role)) == string(models.RoleFreelancer) {
		role = models.RoleFreelancer
	}

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Email format is invalid")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil && existing.IsVerified:
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	case err == nil:
		// stale unverified registration, replace it
		if err := h.DB.Delete(&models.User{}, "id = ?", existing.ID).Error; err != nil {
			return fail(c, err)
		}
	case err != gorm.ErrRecordNotFound:
		return fail(c, err)
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail(c, err)
	}

	otp := utils.GenerateOTP()
	expires := time.Now().Add(time.Duration(h.OTPExpiresMin) * time.Minute)

	u := models.User{
		Name:       name,
		Email:      email,
		Password:   pw,
		Role:       role,
		IsVerified: false,
		OTP:        otp,
		OTPExpires: &expires,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return fail(c, err)
	}

	if h.Mail != nil {
		if err := h.Mail.EnqueueOTP(u.Email, u.Name, otp); err != nil {
			logrus.WithError(err).Warn("otp email not queued")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Verification code sent",
		"data": fiber.Map{
			"id":    u.ID,
			"email": u.Email,
		},
	})
}

type VerifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP completes registration: checks the pending code, marks the
// account verified, and issues the session cookie.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.OTP)
	if email == "" || code == "" {
		return badRequest(c, "Email and OTP are required")
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return badRequest(c, "Invalid or expired OTP")
	}
	if !u.OTPValid(code, time.Now()) {
		return badRequest(c, "Invalid or expired OTP")
	}

	u.IsVerified = true
	u.OTP = ""
	u.OTPExpires = nil
	if err := h.DB.Save(&u).Error; err != nil {
		return fail(c, err)
	}

	if err := h.setSession(c, &u); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(&u),
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return badRequest(c, "Email and password are required")
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}
	if !utils.CheckPassword(u.Password, password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}
	if !u.IsVerified {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Please verify your email first",
		})
	}

	if err := h.setSession(c, &u); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    userPayload(&u),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   -1,
	})
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	uid, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return unauthorized(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(&u),
	})
}

func (h *AuthHandler) setSession(c *fiber.Ctx, u *models.User) error {
	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.ExpiresMin)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.ExpiresMin * 60,
	})
	return nil
}

func userPayload(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
