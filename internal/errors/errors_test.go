package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := dnderr.NotFoundf("character with ID '%s' not found", "abc").WithMeta("character_id", "abc")

	wrapped := dnderr.Wrap(base, "failed to load sheet")
	require.NotNil(t, wrapped)

	assert.True(t, dnderr.IsNotFound(wrapped))
	assert.Equal(t, "abc", dnderr.GetMeta(wrapped)["character_id"])
	assert.Equal(t, "failed to load sheet: character with ID 'abc' not found", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := dnderr.Wrapf(fmt.Errorf("boom"), "call %s", "login")
	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestWithMeta_DoesNotLeakIntoCause(t *testing.T) {
	base := dnderr.Validation("bad").WithMeta("field", "email")
	wrapped := dnderr.Wrap(base, "register").WithMeta("operation", "Register")

	assert.Equal(t, "Register", wrapped.Meta["operation"])
	_, leaked := base.Meta["operation"]
	assert.False(t, leaked)
}

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		code   dnderr.Code
	}{
		{http.StatusBadRequest, dnderr.CodeInvalidArgument},
		{http.StatusUnprocessableEntity, dnderr.CodeInvalidArgument},
		{http.StatusUnauthorized, dnderr.CodeUnauthenticated},
		{http.StatusForbidden, dnderr.CodePermissionDenied},
		{http.StatusNotFound, dnderr.CodeNotFound},
		{http.StatusConflict, dnderr.CodeAlreadyExists},
		{http.StatusServiceUnavailable, dnderr.CodeUnavailable},
		{http.StatusInternalServerError, dnderr.CodeInternal},
		{http.StatusTeapot, dnderr.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := dnderr.FromHTTPStatus(tt.status, "request failed")
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.status, err.Meta["status"])
			assert.Equal(t, "request failed", err.Error())
		})
	}
}

func TestIsUnauthenticated(t *testing.T) {
	assert.True(t, dnderr.IsUnauthenticated(dnderr.Unauthenticated("no session")))
	assert.False(t, dnderr.IsUnauthenticated(dnderr.Internal("boom")))
	assert.False(t, dnderr.IsUnauthenticated(fmt.Errorf("plain")))
}

func TestGetMessage(t *testing.T) {
	wrapped := dnderr.Wrap(dnderr.Validation("email is invalid"), "register")

	assert.Equal(t, "register", dnderr.GetMessage(wrapped))
	assert.Equal(t, "email is invalid", dnderr.GetMessage(dnderr.Validation("email is invalid")))
	assert.Equal(t, "plain", dnderr.GetMessage(fmt.Errorf("plain")))
	assert.Empty(t, dnderr.GetMessage(nil))
}
