package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/siting"
)

func testRanking() []siting.RankedSite {
	return []siting.RankedSite{
		{
			Site: model.Site{
				ID: 1, Name: "Columbus Data Center Corridor",
				Coordinates: model.Coordinate{Latitude: 39.9612, Longitude: -82.9988},
				CleanGen:    72, TransmissionHeadroom: 68, Reliability: 88,
				Region: "Midwest", State: "OH",
			},
			Score: 75.6,
		},
		{
			Site: model.Site{
				ID: 3, Name: "Atlanta Metro South",
				Coordinates: model.Coordinate{Latitude: 33.749, Longitude: -84.388},
				CleanGen:    48, TransmissionHeadroom: 77, Reliability: 85,
				Region: "Southeast", State: "GA",
			},
			Score: 67.8,
		},
	}
}

func TestWriteRankingCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRankingCSV(&buf, testRanking()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, rankingHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Columbus Data Center Corridor", records[1][2])
	assert.Equal(t, "75.6", records[1][5])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "67.8", records[2][5])
}

func TestWriteRankingCSVEmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRankingCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "composite_score")
}

func TestWriteRankingXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRankingXLSX(&buf, testRanking()))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Equal(t, "Rankings", f.Sheets[0].Name)

	rows := f.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "rank", rows[0].Cells[0].String())
	assert.Equal(t, "Atlanta Metro South", rows[2].Cells[2].String())
	assert.Equal(t, "67.8", rows[2].Cells[5].String())
}

func TestWriteEvaluationCSV(t *testing.T) {
	p := 75.0
	evals := []model.SiteEvaluation{{
		Site:    model.Site{ID: 1, Name: "Columbus Data Center Corridor"},
		Weights: model.DefaultWeights(),
		ScoreBreakdown: model.ScoreBreakdown{
			CleanGenScore: 72, CleanGenContribution: 28.8,
			TransmissionScore: 68, TransmissionContribution: 20.4,
			ReliabilityScore: 88, ReliabilityContribution: 26.4,
			CompositeScore: 75.6, WeightsUsed: model.DefaultWeights(),
		},
		PercentileRank: &p,
		EvaluatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteEvaluationCSV(&buf, evals))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "75.6", records[1][2])
	assert.Equal(t, "75.0", records[1][9])
	assert.Equal(t, "2026-03-14T09:30:00Z", records[1][10])
}

func TestWriteEvaluationCSVNoPercentile(t *testing.T) {
	evals := []model.SiteEvaluation{{
		Site:        model.Site{ID: 2, Name: "Cheyenne Wind Belt"},
		EvaluatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteEvaluationCSV(&buf, evals))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][9])
}
