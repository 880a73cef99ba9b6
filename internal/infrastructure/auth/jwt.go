package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"purser/internal/domain/user"
	"purser/internal/shared/authorization"
)

// Claims carry the caller's identity and tenant. The agency id in the token
// is what scopes every request to a single tenant.
type Claims struct {
	UserID   uint                   `json:"user_id"`
	UserSID  string                 `json:"user_sid"`
	AgencyID uint                   `json:"agency_id"`
	Role     authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Issue mints an access token for the given user.
func (s *JWTService) Issue(u *user.User) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		UserID:   u.ID(),
		UserSID:  u.SID(),
		AgencyID: u.AgencyID(),
		Role:     u.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.SID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
