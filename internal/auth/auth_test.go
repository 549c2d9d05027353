package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("secret")

func TestTokenRoundTrip(t *testing.T) {
	user := User{Name: "سارة", Job: "Accountant", Gender: "أنثى"}

	token, err := BuildJWTString(user, secret, time.Minute)
	require.NoError(t, err)

	got, err := GetUser(token, secret)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = GetUser(token, []byte("other"))
	assert.Error(t, err)

	_, err = GetUser("smth", secret)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	user := User{Name: "Sara", Job: "Accountant", Gender: "أنثى"}

	token, err := BuildJWTString(user, secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUser(token, secret)
	assert.Error(t, err)

	m := &AuthenticateMiddleware{Secret: secret}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: userCookie, Value: token})
	rec := httptest.NewRecorder()
	m.Handle(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware(t *testing.T) {
	var seen User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := GetAuthenticatedUser(r)
		assert.True(t, ok)
		seen = u
		w.WriteHeader(http.StatusOK)
	})

	user := User{Name: "Sara", Job: "Accountant", Gender: "أنثى"}
	rec := httptest.NewRecorder()
	require.NoError(t, SetAuthCookie(user, rec, secret, 60))
	cookie := rec.Result().Cookies()[0]

	testCases := []struct {
		name         string
		loginPath    string
		cookie       *http.Cookie
		expectedCode int
	}{
		{name: "api no cookie", expectedCode: http.StatusUnauthorized},
		{name: "page no cookie", loginPath: "/login", expectedCode: http.StatusSeeOther},
		{name: "bad cookie", cookie: &http.Cookie{Name: userCookie, Value: "smth"}, expectedCode: http.StatusUnauthorized},
		{name: "good cookie", cookie: cookie, expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &AuthenticateMiddleware{Secret: secret, LoginPath: tc.loginPath}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedCode == http.StatusSeeOther {
				assert.Equal(t, "/login", rec.Header().Get("Location"))
			}
			if tc.expectedCode == http.StatusOK {
				assert.Equal(t, user, seen)
			}
		})
	}
}
