package main

import (
	"context"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gridsight/siting-cli/internal/catalog"
	"github.com/gridsight/siting-cli/internal/fetcher"
	"github.com/gridsight/siting-cli/internal/geo"
	"github.com/gridsight/siting-cli/internal/model"
)

// printer groups digits in import counts; the national datasets run to tens
// of thousands of rows.
var printer = message.NewPrinter(language.AmericanEnglish)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import power plant, PPA project, and transmission line datasets",
}

var importPlantsCmd = &cobra.Command{
	Use:   "plants",
	Short: "Import the eGRID power plant inventory",
	Long: `Download the eGRID plant export and replace the stored plant
inventory. The source may be an HTTP(S) URL, an FTP URL, or a local file
path; unset it falls back to the configured catalog.plants_url. The format
follows the file extension: .csv and .xlsx parse the eGRID column codes,
anything else is read as the JSON export.`,
	RunE: runImportPlants,
}

var importProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Import and geocode the clean energy PPA project dataset",
	RunE:  runImportProjects,
}

var importLinesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Import HIFLD transmission lines and attach them to sites",
	RunE:  runImportLines,
}

func init() {
	importPlantsCmd.Flags().String("from", "", "plant dataset location (URL or file path)")
	importPlantsCmd.Flags().String("sheet", "", "workbook sheet name for .xlsx sources (default first sheet)")
	importProjectsCmd.Flags().String("from", "", "project dataset location (URL or file path)")
	importProjectsCmd.Flags().Bool("geocode", true, "geocode projects that lack coordinates")
	importLinesCmd.Flags().String("from", "", "transmission line shapefile ZIP (URL or file path)")

	importCmd.AddCommand(importPlantsCmd, importProjectsCmd, importLinesCmd)
	rootCmd.AddCommand(importCmd)
}

// openDataset opens a dataset location, switching on the URL scheme. EIA and
// some state GIS portals still publish over FTP, so that scheme gets its own
// fetcher.
func openDataset(ctx context.Context, loc string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return fetcher.NewClient().Fetch(ctx, loc)
	case strings.HasPrefix(loc, "ftp://"):
		return fetcher.FetchFTP(ctx, loc, 60*time.Second)
	default:
		f, err := os.Open(loc)
		if err != nil {
			return nil, eris.Wrapf(err, "open dataset %s", loc)
		}
		return f, nil
	}
}

func runImportPlants(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "import")
	if err != nil {
		return err
	}
	defer env.Close()

	log := zap.L().With(zap.String("command", "import.plants"))

	loc, _ := cmd.Flags().GetString("from")
	if loc == "" {
		loc = cfg.Catalog.PlantsURL
	}

	log.Info("downloading plant inventory", zap.String("source", loc))
	plants, err := loadPlantDataset(ctx, cmd, loc)
	if err != nil {
		return eris.Wrap(err, "import plants")
	}
	if len(plants) == 0 {
		return eris.New("import plants: dataset contained no usable plants")
	}

	n, err := env.Store.ReplacePlants(ctx, plants)
	if err != nil {
		return eris.Wrap(err, "import plants: persist")
	}
	env.Catalog.SetPlants(plants)

	log.Info("plant inventory replaced", zap.Int64("stored", n))
	printer.Printf("Imported %d power plants.\n", n)
	return nil
}

// loadPlantDataset parses the plant inventory, choosing the decoder from the
// source's file extension.
func loadPlantDataset(ctx context.Context, cmd *cobra.Command, loc string) ([]model.PowerPlant, error) {
	switch datasetExt(loc) {
	case ".xlsx":
		// The workbook parser needs a seekable file on disk.
		local, cleanup, err := localDataset(ctx, loc)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		sheet, _ := cmd.Flags().GetString("sheet")
		return catalog.LoadPowerPlantsXLSX(ctx, local, sheet)
	case ".csv":
		r, err := openDataset(ctx, loc)
		if err != nil {
			return nil, err
		}
		defer r.Close() //nolint:errcheck
		return catalog.LoadPowerPlantsCSV(ctx, r)
	default:
		r, err := openDataset(ctx, loc)
		if err != nil {
			return nil, err
		}
		defer r.Close() //nolint:errcheck
		return catalog.LoadPowerPlants(ctx, r)
	}
}

// datasetExt returns the lowercased file extension of a dataset location,
// ignoring any URL query string.
func datasetExt(loc string) string {
	if u, err := url.Parse(loc); err == nil && u.Path != "" {
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(filepath.Ext(loc))
}

// localDataset makes a dataset available on the local filesystem, downloading
// remote locations into the configured temp dir.
func localDataset(ctx context.Context, loc string) (string, func(), error) {
	if !isRemote(loc) {
		return loc, func() {}, nil
	}

	r, err := openDataset(ctx, loc)
	if err != nil {
		return "", nil, err
	}
	defer r.Close() //nolint:errcheck

	if err := os.MkdirAll(cfg.Catalog.TempDir, 0o755); err != nil {
		return "", nil, eris.Wrap(err, "create temp dir")
	}
	f, err := os.CreateTemp(cfg.Catalog.TempDir, "dataset-*"+datasetExt(loc))
	if err != nil {
		return "", nil, eris.Wrap(err, "create temp file")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, eris.Wrapf(err, "download dataset %s", loc)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, eris.Wrap(err, "close temp file")
	}

	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}

func isRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") ||
		strings.HasPrefix(loc, "https://") ||
		strings.HasPrefix(loc, "ftp://")
}

func runImportProjects(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "import")
	if err != nil {
		return err
	}
	defer env.Close()

	log := zap.L().With(zap.String("command", "import.projects"))

	loc, _ := cmd.Flags().GetString("from")
	if loc == "" {
		loc = cfg.Catalog.SourcesURL
	}
	if loc == "" {
		return eris.New("import projects: --from or catalog.sources_url is required")
	}

	r, err := openDataset(ctx, loc)
	if err != nil {
		return eris.Wrap(err, "import projects")
	}
	defer r.Close() //nolint:errcheck

	sources, err := catalog.LoadEnergySources(ctx, r)
	if err != nil {
		return eris.Wrap(err, "import projects")
	}

	if doGeocode, _ := cmd.Flags().GetBool("geocode"); doGeocode {
		located, err := catalog.GeocodeSources(ctx, coordinateGeocoder{client: env.Geocoder}, sources)
		if err != nil {
			return eris.Wrap(err, "import projects: geocode")
		}
		log.Info("geocoding complete",
			zap.Int("located", located),
			zap.Int("total", len(sources)),
		)
	}

	env.Catalog.SetSources(sources)
	if err := catalog.RecalculateScores(ctx, env.Catalog, cfg.Scoring.DefaultDemandMW); err != nil {
		return eris.Wrap(err, "import projects: recalculate")
	}
	if err := env.Store.SaveSites(ctx, env.Catalog.Sites()); err != nil {
		return eris.Wrap(err, "import projects: persist sites")
	}

	printer.Printf("Imported %d energy projects.\n", len(sources))
	return nil
}

func runImportLines(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "import")
	if err != nil {
		return err
	}
	defer env.Close()

	log := zap.L().With(zap.String("command", "import.lines"))

	loc, _ := cmd.Flags().GetString("from")
	if loc == "" {
		loc = geo.DefaultLinesURL
	}

	var lines []geo.Line
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		log.Info("downloading transmission lines", zap.String("source", loc))
		c := fetcher.NewClient(fetcher.WithTimeout(5 * time.Minute))
		lines, err = geo.ImportLines(ctx, c, loc, cfg.Catalog.TempDir)
	} else {
		lines, err = geo.LoadLines(loc)
	}
	if err != nil {
		return eris.Wrap(err, "import lines")
	}

	// Very low voltage lines are distribution, not transmission.
	kept := lines[:0]
	for _, l := range lines {
		if l.VoltageKV >= cfg.Lines.MinVoltKV {
			kept = append(kept, l)
		}
	}
	log.Info("loaded transmission lines",
		zap.Int("total", len(lines)),
		zap.Int("kept", len(kept)),
		zap.Int("min_voltage_kv", cfg.Lines.MinVoltKV),
	)

	sites := geo.AssignLines(env.Catalog.Sites(), kept, cfg.Lines.MaxKM, cfg.Lines.PerSite)
	env.Catalog.ReplaceSites(sites)
	if err := env.Store.SaveSites(ctx, sites); err != nil {
		return eris.Wrap(err, "import lines: persist sites")
	}

	var attached int
	for _, s := range sites {
		attached += len(s.TransmissionLines)
	}
	printer.Printf("Attached %d line associations across %d sites.\n", attached, len(sites))
	return nil
}
