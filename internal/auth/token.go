package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims carry the registered user so the board never has to look the
// user up again.
type Claims struct {
	jwt.RegisteredClaims
	Username string
	Job      string
	Gender   string
}

type User struct {
	Name   string `json:"name"`
	Job    string `json:"job"`
	Gender string `json:"gender"`
}

// BuildJWTString signs a token for user that expires after ttl.
func BuildJWTString(user User, secret []byte, ttl time.Duration) (string, error) {

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},

		Username: user.Name,
		Job:      user.Job,
		Gender:   user.Gender,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUser(tokenString string, secret []byte) (User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
	if err != nil {
		return User{}, err
	}

	if !token.Valid {
		return User{}, fmt.Errorf("token invalid")
	}
	if claims.Username == "" {
		return User{}, fmt.Errorf("token has no user")
	}

	return User{Name: claims.Username, Job: claims.Job, Gender: claims.Gender}, nil
}
