package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/req"
	"pongarena/internal/pkg/resp"
)

const (
	// MaxAvatarSizeMB is the maximum allowed avatar size in megabytes.
	MaxAvatarSizeMB = 5

	// MaxAvatarSize is the maximum allowed avatar size in bytes.
	MaxAvatarSize = MaxAvatarSizeMB * 1024 * 1024
)

// AllowedAvatarMIMETypes defines the set of permitted MIME types for avatars.
var AllowedAvatarMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// AvatarExtToMIME maps avatar file extensions to their corresponding MIME types.
var AvatarExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// validateAvatarSize checks if the provided file size is within acceptable limits.
func validateAvatarSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxAvatarSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	return nil
}

// validateAvatarType checks if the provided file name and MIME type are allowed.
func validateAvatarType(fileName string, mimeType string) *errs.CustomError {
	lowerMimeType := strings.ToLower(mimeType)

	if _, ok := AllowedAvatarMIMETypes[lowerMimeType]; !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || len(ext) < 2 {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	expectedMIME, ok := AvatarExtToMIME[ext]
	if !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	if expectedMIME != lowerMimeType {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}

// AvatarDownloadURLDuration is how long a presigned avatar download stays valid.
const AvatarDownloadURLDuration = 5 * time.Minute

// HandleAvatarDownloadURL generates a time-limited download URL for the
// caller's stored avatar, for buckets that are not publicly readable.
func HandleAvatarDownloadURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if u.AvatarKey == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		url, err := deps.Storage.PresignDownload(r.Context(), u.AvatarKey, AvatarDownloadURLDuration)
		if err != nil {
			logx.Error(err, "avatar download: presign failed", "user_id", u.ID, "key", u.AvatarKey)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"url": url,
		})
	}
}

// HandleUploadAvatar replaces the caller's avatar. The request is multipart:
// a "password" field for re-verification and an "avatar" file part. The old
// object is deleted best-effort after the new key is committed.
func HandleUploadAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := session.ReverifyPassword(u, r.FormValue("password")); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		defer file.Close()

		if customErr := validateAvatarSize(header.Size); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if customErr := validateAvatarType(header.Filename, mimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := fmt.Sprintf("avatars/%d/%s%s", u.ID, uuid.NewString(), ext)

		if err := deps.Storage.Upload(r.Context(), key, mimeType, file); err != nil {
			logx.Error(err, "upload avatar: storage write failed", "user_id", u.ID, "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		oldKey := u.AvatarKey
		if err := deps.Users.UpdateAvatar(r.Context(), u.ID, key); err != nil {
			logx.Error(err, "upload avatar: db update failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if oldKey != "" && oldKey != key {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := deps.Storage.Delete(ctx, k); err != nil {
					logx.Warn("Failed to delete replaced avatar object", "key", k, "error", err)
				}
			}(oldKey)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"avatar": deps.FullAssetURL(key),
		})
	}
}
