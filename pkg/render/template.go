package render

import (
	"fmt"
	"os"
)

// Load reads the template file at path. Templates are read fresh per
// request rather than cached, so edits to the file take effect without
// a restart.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading template %s: %w", path, err)
	}
	return string(data), nil
}
