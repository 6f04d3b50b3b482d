package repository

import (
	"context"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/credfile"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// FileCredentialRepository reads operator credentials from the obfuscated
// credential file. Nothing is cached; every call reads the file again.
type FileCredentialRepository struct {
	// Path is the location of the credential file.
	Path string
}

// NewFileCredentialRepository creates a repository for the credential file at path.
func NewFileCredentialRepository(path string) *FileCredentialRepository {
	return &FileCredentialRepository{Path: path}
}

// LoadCredentials parses the credential file and returns its records in file order.
func (r *FileCredentialRepository) LoadCredentials(ctx context.Context) ([]models.StoredCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return credfile.Parse(r.Path)
}
