package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrBadRequest))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, StatusCode(ErrForbidden))
	assert.Equal(t, http.StatusNotFound, StatusCode(ErrNotFound))
	assert.Equal(t, http.StatusGone, StatusCode(ErrGone))
	assert.Equal(t, http.StatusConflict, StatusCode(ErrConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("anything else")))
}

func Test_Wrap(t *testing.T) {
	err := Wrap(ErrConflict, "user already exists")

	assert.Equal(t, "user already exists", err.Error())
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, http.StatusConflict, StatusCode(err))
}

func Test_Wrap_SurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", Wrap(ErrGone, "user profile has been deleted"))

	assert.True(t, errors.Is(err, ErrGone))
	assert.Equal(t, http.StatusGone, StatusCode(err))
}

func Test_IsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrBadRequest))
	assert.True(t, IsClientError(Wrap(ErrForbidden, "nope")))
	assert.False(t, IsClientError(errors.New("boom")))
}
