package service

import (
	"fmt"
	"strings"

	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// UploadInput carries one uploaded file from the HTTP layer.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// validateImageUpload checks the declared content type and size limit.
func validateImageUpload(image *UploadInput, maxBytes int) error {
	if !strings.HasPrefix(image.ContentType, "image/") {
		return apperrors.NewValidationError("file must be an image", nil)
	}
	if len(image.Data) > maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("image must not exceed %d MB", maxBytes/(1<<20)), nil)
	}
	return nil
}
