package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Unpack extracts every entry of the archive into destDir, preserving the
// archive's directory layout, and returns the extracted file paths. HIFLD
// ships its shapefile members nested inside a data directory, so callers
// search the returned paths rather than assuming a flat archive.
func Unpack(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open archive %s", zipPath)
	}
	defer r.Close() //nolint:errcheck

	var paths []string
	for _, entry := range r.File {
		p, err := unpackEntry(entry, destDir)
		if err != nil {
			return paths, err
		}
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// unpackEntry writes one archive entry under destDir. Directory entries
// return an empty path. Entries that would land outside destDir are
// rejected.
func unpackEntry(entry *zip.File, destDir string) (string, error) {
	dest := filepath.Join(destDir, entry.Name)
	rel, err := filepath.Rel(destDir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", eris.Errorf("fetcher: archive entry %q escapes the destination", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return "", eris.Wrap(err, "fetcher: create archive directory")
		}
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", eris.Wrap(err, "fetcher: create archive directory")
	}

	rc, err := entry.Open()
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: open archive entry %s", entry.Name)
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: create %s", dest)
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrapf(err, "fetcher: write %s", dest)
	}
	return dest, nil
}
