package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pongarena/internal/pkg/errs"
)

func TestValidateAvatarSize(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validateAvatarSize(1))
	assert.Nil(t, validateAvatarSize(MaxAvatarSize))

	customErr := validateAvatarSize(0)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInvalidParams, customErr.Code)

	customErr = validateAvatarSize(MaxAvatarSize + 1)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrFileSizeTooLarge, customErr.Code)
}

func TestValidateAvatarType(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validateAvatarType("me.png", "image/png"))
	assert.Nil(t, validateAvatarType("me.JPG", "image/jpeg"))
	assert.Nil(t, validateAvatarType("me.webp", "IMAGE/WEBP"))
}

func TestValidateAvatarTypeRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mimeType string
	}{
		{"script.sh", "application/x-sh"},
		{"me.gif", "image/gif"},
		{"me.png", "image/jpeg"},
		{"me", "image/png"},
		{"me.png.exe", "image/png"},
	}

	for _, tc := range cases {
		customErr := validateAvatarType(tc.name, tc.mimeType)
		require.NotNil(t, customErr, "%s / %s", tc.name, tc.mimeType)
		assert.Equal(t, errs.ErrFileTypeInvalid, customErr.Code, "%s / %s", tc.name, tc.mimeType)
	}
}
