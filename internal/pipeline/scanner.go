package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OutputFile represents an encoded file found in an output directory.
type OutputFile struct {
	// RelPath is the path relative to the output directory.
	RelPath string
	// Format is the encoder format the extension belongs to.
	Format string
	// Size is the file size in bytes.
	Size int64
}

// outputExtensions maps file extensions to encoder formats.
var outputExtensions = map[string]string{
	".bin": "raw",
	".h":   "header",
	".ppm": "ppm",
	".png": "png",
}

// ScanOutputs walks an output directory and returns every encoded file,
// sorted by path.
func ScanOutputs(dir string) ([]OutputFile, error) {
	var files []OutputFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		format, ok := outputExtensions[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		files = append(files, OutputFile{
			RelPath: filepath.ToSlash(relPath),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, err
}
