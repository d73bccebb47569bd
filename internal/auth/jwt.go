package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	secret []byte
}

// Claims is the verified identity carried by a request.
type Claims struct {
	UserID uint64
	Role   string
}

const (
	accessTTL  = 24 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

func (j *JWT) Sign(userID uint64, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"typ":  "access",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(accessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

func (j *JWT) SignRefresh(userID uint64) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": "refresh",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(refreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

func (j *JWT) Verify(tokenStr string) (Claims, error) {
	mc, err := j.parse(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if typ, _ := mc["typ"].(string); typ != "access" {
		return Claims{}, errors.New("not an access token")
	}

	uid, err := subject(mc)
	if err != nil {
		return Claims{}, err
	}
	role, _ := mc["role"].(string)
	return Claims{UserID: uid, Role: role}, nil
}

// VerifyRefresh returns the user id carried by a refresh token.
func (j *JWT) VerifyRefresh(tokenStr string) (uint64, error) {
	mc, err := j.parse(tokenStr)
	if err != nil {
		return 0, err
	}
	if typ, _ := mc["typ"].(string); typ != "refresh" {
		return 0, errors.New("not a refresh token")
	}
	return subject(mc)
}

func (j *JWT) parse(tokenStr string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, errors.New("invalid token")
	}
	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}

func subject(mc jwt.MapClaims) (uint64, error) {
	sub, ok := mc["sub"]
	if !ok {
		return 0, errors.New("missing sub")
	}
	// jwt MapClaims numbers are float64
	idf, ok := sub.(float64)
	if !ok {
		return 0, errors.New("invalid sub type")
	}
	return uint64(idf), nil
}
