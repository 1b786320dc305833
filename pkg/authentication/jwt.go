package authentication

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleClaim is the key of the role in the token value.
	RoleClaim = "role"
	// RoleAdmin grants access to the destructive endpoints.
	RoleAdmin = "admin"
)

var ErrEmptyKey = errors.New("jwt key must not be empty")
var ErrInvalidClaim = errors.New("invalid claim")

type CustomClaim struct {
	Value map[string]string `json:"value,omitempty"`
	jwt.RegisteredClaims
}

type JWT struct {
	secret []byte
}

func NewJWT(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return &JWT{
		secret: []byte(key),
	}, nil
}

// GenerateKey returns length random bytes encoded with base64.
func GenerateKey(length int) (string, error) {
	key := make([]byte, length)
	_, err := rand.Read(key)
	if err != nil {
		return "", errors.Join(errors.New("err when generating secret key"), err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

func (j *JWT) NewToken(value map[string]string, d time.Duration) (string, error) {
	claims := CustomClaim{
		Value: value,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	result, err := token.SignedString(j.secret)
	if err != nil {
		return "", errors.Join(errors.New("err when signing the token"), err)
	}
	return result, nil
}

// NewAdminToken issues a token carrying the admin role.
func (j *JWT) NewAdminToken(d time.Duration) (string, error) {
	return j.NewToken(map[string]string{RoleClaim: RoleAdmin}, d)
}

func (j *JWT) Parse(input string) (map[string]string, error) {
	token, err := jwt.ParseWithClaims(input, &CustomClaim{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(errors.New("err when parsing token"), err)
	}
	if claims, ok := token.Claims.(*CustomClaim); ok {
		return claims.Value, nil
	} else {
		return nil, ErrInvalidClaim
	}
}

// IsAdmin reports whether input is a valid token with the admin role.
func (j *JWT) IsAdmin(input string) bool {
	value, err := j.Parse(input)
	if err != nil {
		return false
	}
	return value[RoleClaim] == RoleAdmin
}
