package middleware

import (
	"fmt"
	"os"
	"time"

	"travel-booking/constants"
	"travel-booking/models/user"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimAuthenticated = "auth"
	claimPending       = "pending"
)

func sessionSecret() []byte {
	return []byte(os.Getenv("SESSION_SECRET"))
}

// SetSecureCookie sets an HTTP-only cookie whose Secure flag follows APP_ENV.
func SetSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func signToken(typ string, userID uint, role user.Role, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"typ": typ,
		"sub": float64(userID),
		"exp": time.Now().Add(ttl).Unix(),
	}
	if role != "" {
		claims["role"] = role.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret())
}

func parseToken(tokenString, wantTyp string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return sessionSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if typ, _ := claims["typ"].(string); typ != wantTyp {
		return nil, fmt.Errorf("wrong token type")
	}

	return claims, nil
}

// EstablishSession replaces any pending state with an authenticated session.
// A remember-me login outlives the browser; otherwise the cookie dies with it.
func EstablishSession(c *fiber.Ctx, u *user.User, remember bool) error {
	ttl := time.Duration(constants.SessionHours) * time.Hour
	maxAge := 0 // browser-session cookie
	if remember {
		ttl = time.Duration(constants.RememberMeHours) * time.Hour
		maxAge = constants.RememberMeHours * 3600
	}

	token, err := signToken(claimAuthenticated, u.ID, u.Role, ttl)
	if err != nil {
		return err
	}

	SetSecureCookie(c, constants.SessionCookie, token, maxAge)
	SetSecureCookie(c, constants.PendingCookie, "", -1)
	return nil
}

// EstablishPending remembers the user awaiting OTP verification. Any
// authenticated session is dropped so the two states stay mutually exclusive.
func EstablishPending(c *fiber.Ctx, userID uint) error {
	ttl := time.Duration(constants.PendingMinutes) * time.Minute
	token, err := signToken(claimPending, userID, "", ttl)
	if err != nil {
		return err
	}

	SetSecureCookie(c, constants.PendingCookie, token, constants.PendingMinutes*60)
	SetSecureCookie(c, constants.SessionCookie, "", -1)
	return nil
}

// ClearSession terminates both session states. Safe to call when already
// logged out.
func ClearSession(c *fiber.Ctx) {
	SetSecureCookie(c, constants.SessionCookie, "", -1)
	SetSecureCookie(c, constants.PendingCookie, "", -1)
}

// AuthenticatedUserID returns the user id from a valid session cookie.
func AuthenticatedUserID(c *fiber.Ctx) (uint, bool) {
	cookie := c.Cookies(constants.SessionCookie)
	if cookie == "" {
		return 0, false
	}

	claims, err := parseToken(cookie, claimAuthenticated)
	if err != nil {
		return 0, false
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return uint(sub), true
}

// PendingUserID returns the user id awaiting verification, if any.
func PendingUserID(c *fiber.Ctx) (uint, bool) {
	cookie := c.Cookies(constants.PendingCookie)
	if cookie == "" {
		return 0, false
	}

	claims, err := parseToken(cookie, claimPending)
	if err != nil {
		return 0, false
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return uint(sub), true
}
