package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/constants"
	"github.com/yukikurage/pastry-manager-api/internal/models"
)

// Policy decides which uploads are accepted.
type Policy struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// DefaultPolicy accepts up to 10 MiB of the default document and image types.
func DefaultPolicy() Policy {
	return Policy{
		MaxFileSizeBytes:  constants.DefaultMaxFileSizeBytes,
		AllowedExtensions: constants.DefaultAllowedExtensions,
	}
}

// Validate returns false and a user-facing message when the file is rejected.
// Checks run in a fixed order: size limit, emptiness, extension presence,
// extension allow-list.
func (p Policy) Validate(fileName string, size int64) (bool, string) {
	if size > p.MaxFileSizeBytes {
		maxMB := float64(p.MaxFileSizeBytes) / (1024 * 1024)
		return false, fmt.Sprintf("File size exceeds maximum allowed size of %.2f MB", maxMB)
	}

	if size <= 0 {
		return false, "File is empty"
	}

	ext := extension(fileName)
	if ext == "" {
		return false, "File must have an extension"
	}

	for _, allowed := range p.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true, ""
		}
	}

	return false, fmt.Sprintf("File type '%s' is not allowed. Allowed types: %s",
		ext, strings.Join(p.AllowedExtensions, ", "))
}

func extension(fileName string) string {
	ext := filepath.Ext(baseName(fileName))
	if ext == "." {
		return ""
	}
	return ext
}

// baseName strips directories written with either separator.
func baseName(fileName string) string {
	if i := strings.LastIndexAny(fileName, `/\`); i >= 0 {
		fileName = fileName[i+1:]
	}
	return fileName
}

// ObjectKey builds uploads/{entitytype}/{entityId}/{fileId}-{name}.
func ObjectKey(entityType models.EntityType, entityID, fileID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%s-%s",
		constants.ObjectKeyPrefix,
		strings.ToLower(string(entityType)),
		entityID,
		fileID,
		baseName(fileName),
	)
}
