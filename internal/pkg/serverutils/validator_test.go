package serverutils

import (
	"testing"

	"notemark-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantErr string
	}{
		{
			name:    "valid login",
			req:     dto.LoginRequest{Email: "a@b.com", Password: "secret1"},
			wantErr: "",
		},
		{
			name:    "bad email",
			req:     dto.LoginRequest{Email: "not-an-email", Password: "secret1"},
			wantErr: "Please enter a valid email address",
		},
		{
			name:    "short password",
			req:     dto.LoginRequest{Email: "a@b.com", Password: "12345"},
			wantErr: "Password must be at least 6 characters",
		},
		{
			name:    "missing password",
			req:     dto.LoginRequest{Email: "a@b.com"},
			wantErr: "Password is required",
		},
		{
			name:    "valid verify code",
			req:     dto.VerifyCodeRequest{Email: "a@b.com", Code: "123456"},
			wantErr: "",
		},
		{
			name:    "code too short",
			req:     dto.VerifyCodeRequest{Email: "a@b.com", Code: "12345"},
			wantErr: "Please enter the 6-digit code",
		},
		{
			name:    "code not numeric",
			req:     dto.VerifyCodeRequest{Email: "a@b.com", Code: "12a456"},
			wantErr: "Please enter the 6-digit code",
		},
		{
			name:    "password mismatch",
			req:     dto.SetPasswordRequest{Password: "secret1", ConfirmPassword: "secret2"},
			wantErr: "Passwords do not match",
		},
		{
			name:    "matching passwords",
			req:     dto.SetPasswordRequest{Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: "",
		},
		{
			name:    "note without title",
			req:     dto.CreateNoteRequest{Title: ""},
			wantErr: "Title is required",
		},
		{
			name:    "bookmark without url",
			req:     dto.CreateBookmarkRequest{Url: ""},
			wantErr: "Please enter a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			apiErr, ok := err.(*ApiError)
			if assert.True(t, ok, "expected *ApiError, got %T", err) {
				assert.Equal(t, 400, apiErr.Code)
				assert.Equal(t, tt.wantErr, apiErr.Message)
			}
		})
	}
}
