package credfile

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// Errors returned by Parse and ReadFrom.
var (
	// ErrFileAccess reports that the credential file could not be opened or read.
	ErrFileAccess = errors.New("credential file unavailable")
	// ErrFormat reports a line that could not be decoded. One bad line fails the whole file.
	ErrFormat = errors.New("credential file malformed")
)

const maxLineSize = 1 << 20

// Parse opens the credential file at path and decodes every line.
// The file is closed before Parse returns.
func Parse(path string) ([]models.StoredCredential, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom decodes credential lines from r in order. Blank lines are
// skipped; any line that is not valid hex aborts the read with ErrFormat.
func ReadFrom(r io.Reader) ([]models.StoredCredential, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var creds []models.StoredCredential
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		raw, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, lineNo, err)
		}
		creds = append(creds, newStoredCredential(DecodeRecord(raw), lineNo))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, lineNo+1, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return creds, nil
}

func newStoredCredential(fields []string, lineNo int) models.StoredCredential {
	return models.StoredCredential{
		PasswordHash: HashPassword(fields[0]),
		RawLine:      strings.Join(fields, ","),
		Line:         lineNo,
	}
}

// HashPassword returns the lower-case hex SHA-256 digest of the UTF-8 bytes of password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
