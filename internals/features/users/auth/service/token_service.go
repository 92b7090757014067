package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"jamaahku_backend/internals/configs"
	"jamaahku_backend/internals/features/users/auth/model"
)

// GenerateAccessToken membuat JWT berisi identitas session (user_id, role,
// member_id). Klaim inilah yang dibaca AuthMiddleware jadi auth.Session.
func GenerateAccessToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	if user.UserMemberID != nil {
		claims["member_id"] = user.UserMemberID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
