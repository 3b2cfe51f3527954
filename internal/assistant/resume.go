package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadResume reads the resume document at path and returns it as compact
// JSON. A missing file yields an empty object.
func LoadResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "{}", nil
		}
		return "", fmt.Errorf("failed to read resume: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("resume %s is not valid JSON", path)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "", fmt.Errorf("failed to compact resume: %w", err)
	}
	return buf.String(), nil
}

// ResumeName returns the "name" field of a resume document, if any.
func ResumeName(resume string) string {
	return gjson.Get(resume, "name").String()
}
