package devbackend

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var errTokenExpired = errors.New("token expired")

// Claims carries the user id next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func GenerateToken(userID string, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken validates tokenString and returns its user_id claim.
// Expired tokens yield errTokenExpired, anything else common.ErrAuthRequired.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errTokenExpired
		}
		return "", common.ErrAuthRequired
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrAuthRequired
	}

	return claims.UserID, nil
}
