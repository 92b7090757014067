// internals/middlewares/auth/claim_utils.go
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const sessionKey = "session"

// Session adalah identitas terotentikasi yang dibawa eksplisit ke setiap
// pemanggilan service (pengganti identitas global ala localStorage).
type Session struct {
	UserID   uuid.UUID
	MemberID uuid.UUID
	Role     string
}

func (s Session) IsAdmin() bool     { return s.Role == "admin" }
func (s Session) IsBendahara() bool { return s.Role == "bendahara" }
func (s Session) IsPengurus() bool  { return s.IsAdmin() || s.IsBendahara() }

// SessionFromCtx mengambil Session yang di-set AuthMiddleware.
func SessionFromCtx(c *fiber.Ctx) (Session, error) {
	sess, ok := c.Locals(sessionKey).(Session)
	if !ok {
		return Session{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No session")
	}
	return sess, nil
}

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// 1) Ambil dari Authorization header atau fallback cookie
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	// 2) Robust split: toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}

	// 3) Sanitasi: buang kutip di kiri/kanan & spasi
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type")
	}

	if time.Now().Add(-skew).Unix() >= expUnix {
		return fmt.Errorf("token expired")
	}
	return nil
}

func sessionFromClaims(claims jwt.MapClaims) (Session, error) {
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return Session{}, fmt.Errorf("invalid user_id claim")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "jamaah"
	}

	sess := Session{UserID: userID, Role: role}

	// member_id opsional (akun pengurus bisa tanpa data keanggotaan)
	if memberIDStr, _ := claims["member_id"].(string); memberIDStr != "" {
		if memberID, err := uuid.Parse(memberIDStr); err == nil {
			sess.MemberID = memberID
		}
	}
	return sess, nil
}
