package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFTPURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "egrid bulk archive",
			url:      "ftp://gaftp.epa.gov/egrid/egrid2023_data.zip",
			wantHost: "gaftp.epa.gov:21",
			wantPath: "/egrid/egrid2023_data.zip",
		},
		{
			name:     "explicit port kept",
			url:      "ftp://gaftp.epa.gov:2121/egrid/egrid2023_data.zip",
			wantHost: "gaftp.epa.gov:2121",
			wantPath: "/egrid/egrid2023_data.zip",
		},
		{
			name:    "http scheme rejected",
			url:     "https://api.epa.gov/egrid",
			wantErr: true,
		},
		{
			name:    "missing path",
			url:     "ftp://gaftp.epa.gov",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, path, err := splitFTPURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestFetchFTPRejectsNonFTPURL(t *testing.T) {
	_, err := FetchFTP(context.Background(), "https://api.epa.gov/egrid", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp")
}
