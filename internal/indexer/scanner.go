package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"ragcompare/internal/partition"
)

// ScannedFile is an ingestible file found by ScanDir.
type ScannedFile struct {
	RelPath     string // slash-separated, relative to the scan root
	AbsPath     string
	ContentType string
}

// ScanDir walks root and returns every file the partitioner can handle, in
// lexical order. Hidden files and directories are skipped.
func ScanDir(ctx context.Context, root string) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		contentType := partition.DetectContentType(d.Name(), "")
		if !partition.Supported(contentType) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		files = append(files, ScannedFile{
			RelPath:     filepath.ToSlash(relPath),
			AbsPath:     path,
			ContentType: contentType,
		})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return files, nil
}
