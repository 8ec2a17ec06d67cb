package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"travel-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxLoggedBodyBytes = 8 * 1024

// sanitizeRequestBody returns a loggable copy of the request body. Multipart
// uploads and oversized payloads are replaced with a placeholder instead of
// being copied into the logs table.
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return "[multipart form data omitted]"
	}

	body := c.Body()
	if len(body) > maxLoggedBodyBytes {
		return fmt.Sprintf("[body truncated, %d bytes]", len(body))
	}
	return string(append([]byte(nil), body...))
}

// CreateSanitizedLogEntry creates a deep-copied, sanitized log entry for the
// async logger. Copies guard against fasthttp reusing the underlying buffers.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

// SaveLicenseFile stores an uploaded vendor license under a uuid name and
// returns the stored path. The upload directory defaults to media/licenses.
func SaveLicenseFile(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	dir := os.Getenv("MEDIA_ROOT")
	if dir == "" {
		dir = "media"
	}
	dir = filepath.Join(dir, "licenses")

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, name)
	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save license file: %w", err)
	}

	return path, nil
}
