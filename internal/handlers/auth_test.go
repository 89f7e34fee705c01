package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupAndSignin(t *testing.T) {
	f := newHandlerFixture(t, 0)
	auth := NewAuthHandler(f.userRepo, "test-secret")

	c, rec := f.request(http.MethodPost, "/api/v1/auth/signup",
		`{"username":"ann","password":"secret-password","name":"Ann","title":"Engineer"}`, 0)
	assert.NoError(t, auth.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	// Duplicate username conflicts.
	c, _ = f.request(http.MethodPost, "/api/v1/auth/signup",
		`{"username":"ann","password":"another-password"}`, 0)
	assert.Equal(t, http.StatusConflict, httpErrorCode(t, auth.Signup(c)))

	// Correct credentials sign in.
	c, rec = f.request(http.MethodPost, "/api/v1/auth/signin",
		`{"username":"ann","password":"secret-password"}`, 0)
	assert.NoError(t, auth.SignIn(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong password is rejected.
	c, _ = f.request(http.MethodPost, "/api/v1/auth/signin",
		`{"username":"ann","password":"wrong-password"}`, 0)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, auth.SignIn(c)))

	// Unknown username is rejected the same way.
	c, _ = f.request(http.MethodPost, "/api/v1/auth/signin",
		`{"username":"nobody","password":"secret-password"}`, 0)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, auth.SignIn(c)))
}

func TestSignupValidation(t *testing.T) {
	f := newHandlerFixture(t, 0)
	auth := NewAuthHandler(f.userRepo, "test-secret")

	// Password below the minimum length.
	c, _ := f.request(http.MethodPost, "/api/v1/auth/signup",
		`{"username":"ann","password":"short"}`, 0)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, auth.Signup(c)))

	// Missing username.
	c, _ = f.request(http.MethodPost, "/api/v1/auth/signup",
		`{"password":"secret-password"}`, 0)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, auth.Signup(c)))
}
