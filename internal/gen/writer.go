package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every file into its directory, creating directories as
// needed. Files with an empty Dir go to the working directory.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		dir := file.Dir
		if dir == "" {
			dir = "."
		}

		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}

		path := filepath.Join(dir, file.Filename)
		if err := os.WriteFile(path, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", path, err)
		}
	}

	return nil
}
