package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/w1ncs/netcontrol/internal/models"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateTokens generates Access and Refresh tokens for a profile
func GenerateTokens(profile *models.Profile, secret string) (string, string, error) {
	claims := jwt.MapClaims{
		"id":       profile.ID,
		"callSign": profile.CallSign,
		"role":     profile.Role,
		"exp":      time.Now().Add(time.Hour * 12).Unix(), // one net day
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":  profile.ID,
		"exp": time.Now().Add(time.Hour * 24 * 90).Unix(), // 90 days
	}
	refreshTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err := refreshTokenObj.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GenerateGrantToken issues a short-lived token carrying delegated net
// permissions, handed out after a successful passcode verification. The
// grant lives only as long as the client keeps the token in memory.
func GenerateGrantToken(netID string, perms models.PermissionSet, secret string) (string, error) {
	claims := jwt.MapClaims{
		"type":        "grant",
		"netId":       netID,
		"permissions": map[string]bool(perms),
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(time.Hour * 12).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseGrantToken validates a grant token and returns the net it applies to
// and the granted permission set
func ParseGrantToken(tokenString, secret string) (string, models.PermissionSet, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return "", nil, err
	}
	if claims["type"] != "grant" {
		return "", nil, errors.New("not a grant token")
	}
	netID, _ := claims["netId"].(string)
	perms := models.PermissionSet{}
	if raw, ok := claims["permissions"].(map[string]interface{}); ok {
		for k, v := range raw {
			b, _ := v.(bool)
			perms[k] = b
		}
	}
	return netID, perms, nil
}

// ValidateToken parses and validates a token
func ValidateToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
