// Package labels handles the configured label templates and the record file
// the print engine merges into them.
package labels

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// ErrInvalidSpec reports a label entry that does not follow path|printer[|copies].
var ErrInvalidSpec = errors.New("invalid label spec")

// ParseSpec parses one label entry of the form "path|printer|copies".
// The copies part may be omitted and defaults to 1.
func ParseSpec(key, raw string) (models.LabelSpec, error) {
	parts := strings.Split(raw, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return models.LabelSpec{}, fmt.Errorf("%w: label %q: %q (expected path|printer|copies)", ErrInvalidSpec, key, raw)
	}

	spec := models.LabelSpec{
		Key:     key,
		Path:    strings.TrimSpace(parts[0]),
		Printer: strings.TrimSpace(parts[1]),
		Copies:  1,
	}
	if spec.Path == "" {
		return models.LabelSpec{}, fmt.Errorf("%w: label %q has no path", ErrInvalidSpec, key)
	}
	if spec.Printer == "" {
		return models.LabelSpec{}, fmt.Errorf("%w: label %q has no printer", ErrInvalidSpec, key)
	}
	if len(parts) == 3 {
		copies, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || copies < 1 {
			return models.LabelSpec{}, fmt.Errorf("%w: label %q has invalid copy count %q", ErrInvalidSpec, key, parts[2])
		}
		spec.Copies = copies
	}
	return spec, nil
}

// ParseSpecs parses every configured label and returns them sorted by key.
func ParseSpecs(entries map[string]string) ([]models.LabelSpec, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	specs := make([]models.LabelSpec, 0, len(keys))
	for _, k := range keys {
		spec, err := ParseSpec(k, entries[k])
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
