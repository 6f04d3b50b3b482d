package labels

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// RecordFileName is the data file written next to each label template.
	RecordFileName = "label.csv"
	// UnknownPrefix stands in for the operator prefix when nobody is logged in.
	UnknownPrefix = "?"

	dateLayout = "2006-01-02"
)

var recordHeader = []string{"SerialNumber", "Date", "Signature"}

// RecordPath returns the location of the record file for the template at labelPath.
func RecordPath(labelPath string) string {
	return filepath.Join(filepath.Dir(labelPath), RecordFileName)
}

// WriteRecord overwrites the record file next to labelPath with a header and
// a single row: serial, the date of at, and the operator prefix.
func WriteRecord(labelPath, serial, prefix string, at time.Time) (string, error) {
	if prefix == "" {
		prefix = UnknownPrefix
	}
	path := RecordPath(labelPath)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	w.UseCRLF = true
	if err := w.WriteAll([][]string{
		recordHeader,
		{serial, at.Format(dateLayout), prefix},
	}); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
