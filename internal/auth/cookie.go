package auth

import (
	"net/http"
	"time"
)

const userCookie = "_user"

func VerifyUser(r *http.Request, secret []byte) (User, error) {
	cookie, err := r.Cookie(userCookie)
	if err == nil {
		user, err := GetUser(cookie.Value, secret)
		if err != nil {
			return user, err
		}
		return user, nil
	}
	return User{}, err
}

func SetAuthCookie(user User, w http.ResponseWriter, secret []byte, TTLSeconds int) error {

	token, err := BuildJWTString(user, secret, time.Duration(TTLSeconds)*time.Second)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{Name: userCookie, Value: token, MaxAge: TTLSeconds, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	http.SetCookie(w, cookie)
	return nil
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: userCookie, Value: "", MaxAge: -1, Path: "/"})
}
