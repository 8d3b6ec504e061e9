// Package export writes site rankings and evaluations to CSV and XLSX for
// downstream analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/siting"
)

var rankingHeader = []string{
	"rank", "site_id", "name", "state", "region",
	"composite_score", "clean_gen", "transmission_headroom", "reliability",
	"latitude", "longitude",
}

// rankingRows flattens a ranking into string rows, header first.
func rankingRows(ranked []siting.RankedSite) [][]string {
	rows := make([][]string, 0, len(ranked)+1)
	rows = append(rows, rankingHeader)
	for i, r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Site.ID),
			r.Site.Name,
			r.Site.State,
			r.Site.Region,
			formatScore(r.Score),
			formatScore(r.Site.CleanGen),
			formatScore(r.Site.TransmissionHeadroom),
			formatScore(r.Site.Reliability),
			fmt.Sprintf("%.4f", r.Site.Coordinates.Latitude),
			fmt.Sprintf("%.4f", r.Site.Coordinates.Longitude),
		})
	}
	return rows
}

var evaluationHeader = []string{
	"site_id", "name", "composite_score",
	"clean_gen_score", "clean_gen_contribution",
	"transmission_score", "transmission_contribution",
	"reliability_score", "reliability_contribution",
	"percentile_rank", "evaluated_at",
}

// evaluationRows flattens evaluations into string rows, header first.
func evaluationRows(evals []model.SiteEvaluation) [][]string {
	rows := make([][]string, 0, len(evals)+1)
	rows = append(rows, evaluationHeader)
	for _, ev := range evals {
		b := ev.ScoreBreakdown
		percentile := ""
		if ev.PercentileRank != nil {
			percentile = formatScore(*ev.PercentileRank)
		}
		rows = append(rows, []string{
			strconv.Itoa(ev.Site.ID),
			ev.Site.Name,
			formatScore(b.CompositeScore),
			formatScore(b.CleanGenScore),
			formatScore(b.CleanGenContribution),
			formatScore(b.TransmissionScore),
			formatScore(b.TransmissionContribution),
			formatScore(b.ReliabilityScore),
			formatScore(b.ReliabilityContribution),
			percentile,
			ev.EvaluatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return rows
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// WriteRankingCSV writes a ranking as CSV.
func WriteRankingCSV(w io.Writer, ranked []siting.RankedSite) error {
	return writeCSV(w, rankingRows(ranked))
}

// WriteRankingXLSX writes a ranking as a single-sheet XLSX workbook.
func WriteRankingXLSX(w io.Writer, ranked []siting.RankedSite) error {
	return writeXLSX(w, "Rankings", rankingRows(ranked))
}

// WriteEvaluationCSV writes site evaluations as CSV.
func WriteEvaluationCSV(w io.Writer, evals []model.SiteEvaluation) error {
	return writeCSV(w, evaluationRows(evals))
}

// WriteEvaluationXLSX writes site evaluations as a single-sheet XLSX workbook.
func WriteEvaluationXLSX(w io.Writer, evals []model.SiteEvaluation) error {
	return writeXLSX(w, "Evaluations", evaluationRows(evals))
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func writeXLSX(w io.Writer, sheetName string, rows [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}
