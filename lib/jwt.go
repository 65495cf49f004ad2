package lib

import (
	"burnshop_server/structs"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignToken signs claims as an HS256 JWT
func SignToken(claims *structs.AuthClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      claims.Sub.String(),
		"username": claims.Username,
		"role":     claims.Role,
		"iat":      claims.Iat.Unix(),
		"exp":      claims.Exp.Unix(),
		"jti":      claims.Jti.String(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := uuidClaim(claims, "sub")
	if err != nil {
		return nil, err
	}

	jti, err := uuidClaim(claims, "jti")
	if err != nil {
		return nil, err
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid username claim", ErrInvalidToken)
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid role claim", ErrInvalidToken)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid iat claim", ErrInvalidToken)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid exp claim", ErrInvalidToken)
	}

	return &structs.AuthClaims{
		Sub:      sub,
		Username: username,
		Role:     role,
		Iat:      time.Unix(int64(iat), 0),
		Exp:      time.Unix(int64(exp), 0),
		Jti:      jti,
	}, nil
}

// ExtractClaims reads the access cookie from the request and parses it
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	accessToken, err := GetCookieValue(AccessCookieName, r)
	if err != nil {
		return nil, err
	}

	return ParseToken(accessToken, secret)
}

func uuidClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: invalid %s claim", ErrInvalidToken, key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid UUID in %s claim", ErrInvalidToken, key)
	}
	return id, nil
}
