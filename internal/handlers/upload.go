package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveProfileImage writes the uploaded "image" form file under
// uploads/profiles and returns its public URL path.
func saveProfileImage(c *fiber.Ctx, profileID uuid.UUID) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", errors.New("image file is required")
	}
	if file.Size > maxImageSize {
		return "", errors.New("image must be 5MB or smaller")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("unsupported image format")
	}

	dir := filepath.Join("uploads", "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d%s", profileID, time.Now().UnixNano(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return "/uploads/profiles/" + name, nil
}
