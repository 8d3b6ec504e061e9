package geo

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVoltage(t *testing.T) {
	tests := []struct {
		attr     string
		expected int
	}{
		{"345", 345},
		{"345.00", 345},
		{" 500 ", 500},
		{"-999999", -999999}, // unknown sentinel stays negative
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseVoltage(tt.attr))
		})
	}
}

func TestFindByExt(t *testing.T) {
	paths := []string{
		"/tmp/lines/readme.txt",
		"/tmp/lines/data/Transmission_Lines.SHP",
		"/tmp/lines/data/Transmission_Lines.dbf",
	}

	path, err := findByExt(paths, ".shp")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lines/data/Transmission_Lines.SHP", path)

	_, err = findByExt(paths, ".prj")
	require.Error(t, err)
}

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// The HIFLD download and extraction path is exercised up to shapefile
// parsing; an archive without a .shp member must fail cleanly.
func TestImportLinesMissingShapefile(t *testing.T) {
	payload := zipArchive(t, map[string]string{
		"nested/dir/readme.txt": "no shapefile here",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	_, err := ImportLines(context.Background(), nil, srv.URL, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".shp")
}

func TestImportLinesExtractsNestedArchive(t *testing.T) {
	payload := zipArchive(t, map[string]string{
		"data/lines.shp": "not a real shapefile",
		"data/lines.dbf": "attributes",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	tempDir := t.TempDir()
	_, err := ImportLines(context.Background(), nil, srv.URL, tempDir)
	// Download and extraction succeed; the stub bytes then fail attribute
	// lookup because they carry no real DBF fields.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID, VOLTAGE")

	_, statErr := os.Stat(filepath.Join(tempDir, "lines", "data", "lines.shp"))
	assert.NoError(t, statErr)
}

func TestLoadLinesMissingFile(t *testing.T) {
	_, err := LoadLines(filepath.Join(t.TempDir(), "absent.shp"))
	require.Error(t, err)
}
