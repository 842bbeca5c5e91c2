package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeInvalidConfiguration, "zombie count must be at least 1", map[string]string{"field": "zombie_count"})

	assert.True(t, errors.Is(err, InvalidConfiguration))
	assert.False(t, errors.Is(err, NotFound))
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := fmt.Errorf("load: %w", Wrap(CodeInternal, "storage failed", cause))

	require.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeInternal, GetCode(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(CodeInvalidConfiguration, "bad"), http.StatusBadRequest},
		{New(CodeNotFound, "missing"), http.StatusNotFound},
		{New(CodeInternal, "boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, CodeUnknown, GetCode(errors.New("plain")))
	assert.Equal(t, CodeUnknown, GetCode(nil))
}
