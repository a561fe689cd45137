package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"gigflow/internal/models"
	"gigflow/internal/utils"
)

// GoogleOAuthHandler signs users in with a Google account. Accounts
// provisioned this way are verified immediately (Google already owns the
// mailbox) and get the client role.
type GoogleOAuthHandler struct {
	DB              *gorm.DB
	JWTSecret       string
	CookieName      string
	ExpiresMin      int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    st,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})
	return c.Redirect(h.oauthCfg().AuthCodeURL(st), http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing code/state")
	}
	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state")
	}

	tok, err := h.oauthCfg().Exchange(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to exchange code")
	}

	client := h.oauthCfg().Client(c.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to decode userinfo")
	}
	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" || !gu.VerifiedEmail {
		return c.Status(fiber.StatusBadRequest).SendString("Google account has no verified email")
	}

	var u models.User
	err = h.DB.Where("email = ?", email).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		// local password is unusable; login stays via Google
		hashed, _ := utils.HashPassword(randomState(24))
		u = models.User{
			Name:       gu.Name,
			Email:      email,
			Password:   hashed,
			Role:       models.RoleClient,
			IsVerified: true,
		}
		if err := h.DB.Create(&u).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to create account")
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	} else if !u.IsVerified {
		u.IsVerified = true
		u.OTP = ""
		u.OTPExpires = nil
		_ = h.DB.Save(&u).Error
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.ExpiresMin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to create session")
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.ExpiresMin * 60,
	})

	dest, err := url.Parse(h.FrontendBaseURL)
	if err != nil || dest.Host == "" {
		return c.Redirect("/", http.StatusTemporaryRedirect)
	}
	return c.Redirect(dest.String(), http.StatusTemporaryRedirect)
}
