package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort       string
	DBDSN         string
	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTExpiresMin int
	CookieName    string

	OTPExpiresMin int

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string

	FrontendBaseURL string

	MailAPIKey string
	MailFrom   string
	MailAPIURL string
}

func Load() Config {
	jwtExpires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	otpExpires, _ := strconv.Atoi(get("OTP_EXPIRES_MIN", "10"))
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DBDSN:         must("DB_DSN"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),

		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: jwtExpires,
		CookieName:    get("COOKIE_NAME", "gf_token"),

		OTPExpiresMin: otpExpires,

		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:   get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect: get("GOOGLE_REDIRECT_URL", ""),

		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:5173"),

		MailAPIKey: get("MAIL_API_KEY", ""),
		MailFrom:   get("MAIL_FROM", ""),
		MailAPIURL: get("MAIL_API_URL", "https://api.useplunk.com/v1/send"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
