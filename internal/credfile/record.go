package credfile

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Delimiter separates the fields of a decoded record.
const Delimiter = "\x15"

// DecodeRecord reverses the obfuscation of one raw line and returns its
// fields. Every byte maps to a windows-1250 code point, so decoding never
// fails; empty input yields a single empty field.
func DecodeRecord(raw []byte) []string {
	plain := Transform(raw)
	text, _ := charmap.Windows1250.NewDecoder().Bytes(plain)
	return strings.Split(string(text), Delimiter)
}

// EncodeRecord builds one credential file line from its fields: the fields
// are joined with Delimiter, encoded as windows-1250, obfuscated and written
// as lower-case hex.
func EncodeRecord(fields []string) (string, error) {
	text := strings.Join(fields, Delimiter)
	raw, err := charmap.Windows1250.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return "", fmt.Errorf("encode windows-1250: %w", err)
	}
	return hex.EncodeToString(Transform(raw)), nil
}
