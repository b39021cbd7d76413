package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    *apperror.AppError
		status int
		code   string
	}{
		{apperror.Validation("content", "content is required"), http.StatusBadRequest, "validation_error"},
		{apperror.Unauthenticated("invalid credentials"), http.StatusUnauthorized, "authentication_required"},
		{apperror.Forbidden("not allowed"), http.StatusForbidden, "forbidden"},
		{apperror.NotFound("account", "alice"), http.StatusNotFound, "not_found"},
		{apperror.AlreadyExists("already following"), http.StatusConflict, "already_exists"},
		{apperror.InvalidOperation("cannot follow yourself"), http.StatusConflict, "invalid_operation"},
	}
	for _, tc := range cases {
		status, code := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, code)
	}
}

func TestRespondErrorUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal detail never leaks into the body
	assert.NotContains(t, w.Body.String(), "boom")
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestRespondErrorValidationField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, apperror.Validation("email", "email is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
}

func TestPagingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&limit=5", nil)

	page, limit := pagingParams(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, limit)

	// A fresh context per case: gin caches parsed query params per request
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	page, limit = pagingParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
