package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeRateLimited, http.StatusTooManyRequests},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}

func TestAsErrorKeepsInnerType(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	inner := NewError(ctx, LayerRepository, ErrorTypeConflict, "TrxID already used", nil, "inner-uuid")

	wrapped := AsError(ctx, LayerDomain, fmt.Errorf("insert: %w", inner), "record unlock request")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeConflict, wrapped.Type)
	assert.Equal(t, "inner-uuid", wrapped.UUID)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.True(t, IsErrorType(wrapped, ErrorTypeConflict))
}

func TestAsErrorDefaultsToInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerDomain, errors.New("boom"), "do thing")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Equal(t, "do thing", wrapped.Message)
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "nothing"))
}

func TestAsErrorWithUUIDMapsGormSentinels(t *testing.T) {
	ctx := context.Background()

	notFound := AsErrorWithUUID(ctx, LayerRepository, fmt.Errorf("query: %w", gorm.ErrRecordNotFound), "page not found", "u-1")
	assert.Equal(t, ErrorTypeNotFound, notFound.Type)
	assert.Equal(t, "u-1", notFound.UUID)

	dup := AsErrorWithUUID(ctx, LayerRepository, gorm.ErrDuplicatedKey, "duplicate", "u-2")
	assert.Equal(t, ErrorTypeConflict, dup.Type)

	other := AsErrorWithUUID(ctx, LayerRepository, errors.New("conn reset"), "query failed", "u-3")
	assert.Equal(t, ErrorTypeDatabaseError, other.Type)
	assert.Equal(t, http.StatusInternalServerError, ErrorTypeToHTTPStatus(other.Type))
}
