package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims carried by both token kinds. Gen is the session generation at issue
// time; bumping the stored generation revokes every token issued before it.
type Claims struct {
	TenantID string `json:"tid"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Type     string `json:"typ"`
	Gen      int64  `json:"gen"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller.
type Principal struct {
	ProfessionalID string
	TenantID       string
	Role           string
	Email          string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Professional *models.Professional
}

func (a *Authority) sign(p *models.Professional, typ string, gen int64, ttl time.Duration) (string, string, error) {
	now := a.now()
	jti := uuid.NewString()

	claims := Claims{
		TenantID: p.BarbershopID,
		Role:     p.Role,
		Email:    p.Email,
		Type:     typ,
		Gen:      gen,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func (a *Authority) parse(tokenString, typ string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.Type != typ || claims.Subject == "" || claims.TenantID == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}
