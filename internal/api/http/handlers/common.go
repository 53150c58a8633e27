package handlers

import (
	"io"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/service"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

var validate = validator.New()

// parseBody decodes a JSON body into dest and runs struct validation.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return validateStruct(dest)
}

// validateStruct turns validator failures into one validation error
// with per-field details.
func validateStruct(dest interface{}) error {
	err := validate.Struct(dest)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details[fieldErr.Field()] = "failed on " + fieldErr.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}

// parsePagination reads page/page_size query parameters into a
// limit/offset pair.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

// queryPtr returns a query parameter, or nil when absent or empty.
func queryPtr(c *fiber.Ctx, key string) *string {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	return &val
}

// formPtr returns a multipart form field, or nil when the field was not
// sent at all. Partial updates need the distinction between absent and
// empty.
func formPtr(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// readImage loads an uploaded file from the named multipart field.
// A missing field returns nil without error.
func readImage(c *fiber.Ctx, field string) (*service.UploadInput, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("could not read uploaded file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewValidationError("could not read uploaded file", nil)
	}

	return &service.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}
