/*
Package handler provides HTTP handler functions for user avatar management.
*/
package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"pulsehub/internal/app/user"
	"pulsehub/internal/pkg/auth/jwt"
	"pulsehub/internal/pkg/errs"
	"pulsehub/internal/pkg/logx"
	"pulsehub/internal/pkg/randx"
	"pulsehub/internal/pkg/req"
	"pulsehub/internal/pkg/resp"
)

// PresignAvatarInput defines the JSON input structure for generating an avatar upload URL.
type PresignAvatarInput struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

// ConfirmAvatarInput defines the JSON input structure for recording an uploaded avatar.
type ConfirmAvatarInput struct {
	FileKey string `json:"fileKey"`
}

// HandlePresignAvatarURL creates an HTTP HandlerFunc to generate a time-limited,
// pre-signed URL for an avatar upload, scoped to the requesting user.
func HandlePresignAvatarURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil || payload.ID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := user.ValidateAvatarSize(input.FileSize); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if err := user.ValidateAvatarType(input.FileName, input.MimeType); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		fileExt := strings.ToLower(filepath.Ext(input.FileName))
		fileKey := fmt.Sprintf("avatars/%s/%s%s", payload.ID, randx.AssetID(), fileExt)

		url, err := deps.StorageService.PresignUpload(
			r.Context(),
			fileKey,
			input.MimeType,
			input.FileSize,
			user.PresignedURLDuration,
		)

		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageFailed))
			return
		}

		data := map[string]any{
			"presignedUrl": url,
			"fileKey":      fileKey,
			"fileName":     input.FileName,
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleConfirmAvatar records an uploaded avatar key on the user's profile and
// reclaims the previously stored object.
func HandleConfirmAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil || payload.ID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ConfirmAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		expectedKeyPrefix := fmt.Sprintf("avatars/%s/", payload.ID)
		if input.FileKey == "" || !strings.HasPrefix(input.FileKey, expectedKeyPrefix) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		oldKey, err := deps.Users.SetAvatarKey(r.Context(), payload.ID, input.FileKey)
		if err != nil {
			logx.Error(err, "Failed to record avatar key", "user_id", payload.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrPersistenceFailed))
			return
		}

		if oldKey != "" && oldKey != input.FileKey {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = deps.StorageService.Delete(ctx, k)
			}(oldKey)
		}

		data := map[string]any{
			"avatar": deps.StorageService.PublicURL(input.FileKey),
		}
		resp.RespondSuccess(w, r, data)
	}
}
