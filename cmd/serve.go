package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"math"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/catalog"
	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/scoring"
	"github.com/gridsight/siting-cli/internal/siting"
	"github.com/gridsight/siting-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the siting HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env, cfg.Server.AllowedOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// apiServer carries the handler dependencies.
type apiServer struct {
	env *appEnv
}

func newRouter(env *appEnv, allowedOrigins []string) http.Handler {
	s := &apiServer{env: env}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/config", s.handleConfig)

	r.Route("/api/grid", func(r chi.Router) {
		r.Get("/nodes", s.handleNodes)
		r.Get("/nodes/geojson", s.handleNodesGeoJSON)
		r.Get("/nodes/{nodeID}", s.handleNode)
		r.Get("/nodes/{nodeID}/nearby-sources", s.handleNearbySources)
		r.Get("/regions", s.handleRegions)
		r.Get("/states", s.handleStates)
	})

	r.Route("/api/power-plants", func(r chi.Router) {
		r.Get("/", s.handlePlants)
		r.Get("/geojson", s.handlePlantsGeoJSON)
		r.Get("/stats", s.handlePlantStats)
		r.Get("/fuel-categories", s.handleFuelCategories)
	})

	r.Route("/api/siting", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/evaluate-location", s.handleEvaluateLocation)
		r.Get("/alternatives", s.handleAlternatives)
		r.Get("/rankings", s.handleRankings)
		r.Post("/scenarios/save", s.handleSaveScenario)
		r.Get("/scenarios", s.handleListScenarios)
		r.Post("/scenarios/compare", s.handleCompareScenarios)
		r.Delete("/scenarios/clear", s.handleClearScenarios)
	})

	r.Route("/api/energy-sources", func(r chi.Router) {
		r.Get("/", s.handleSources)
		r.Get("/geojson", s.handleSourcesGeoJSON)
		r.Get("/stats", s.handleSourceStats)
		r.Post("/reload", s.handleReload)
	})

	return r
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	sources := s.env.Catalog.Sources()
	plants := s.env.Catalog.Plants()
	respondJSON(w, http.StatusOK, map[string]any{
		"status":                "healthy",
		"service":               "siting-cli",
		"nodes_loaded":          len(s.env.Catalog.Sites()),
		"energy_sources_loaded": len(sources),
		"power_plants_loaded":   len(plants),
		"using_real_clean_gen":  len(sources) > 0,
		"using_real_transmission": len(plants) > 0,
	})
}

func (s *apiServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		// Geographic center of the continental US.
		"default_center": []float64{-98.5795, 39.8283},
		"default_zoom":   4,
		"default_weights": map[string]float64{
			"clean":        cfg.Scoring.CleanGenWeight,
			"transmission": cfg.Scoring.TransmissionWeight,
			"reliability":  cfg.Scoring.ReliabilityWeight,
		},
		"demand_types": []string{
			model.DemandDataCenter, model.DemandElectrolyzer, model.DemandEVHub,
			model.DemandHydrogenPlant, model.DemandAICompute,
		},
	})
}

// queryFloat parses an optional float query parameter, returning nil when
// absent.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, eris.Errorf("invalid %s: %q", name, raw)
	}
	return &v, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (s *apiServer) handleNodes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	region, state := q.Get("region"), q.Get("state")

	minClean, err := queryFloat(r, "min_clean_gen")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	minTrans, err := queryFloat(r, "min_transmission")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	minRel, err := queryFloat(r, "min_reliability")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	nodes := filterSites(s.env.Catalog.Sites(), region, state, minClean, minTrans, minRel)

	respondJSON(w, http.StatusOK, map[string]any{
		"nodes": nodes,
		"total": len(nodes),
		"filters_applied": map[string]any{
			"region": region, "state": state,
			"min_clean_gen": minClean, "min_transmission": minTrans, "min_reliability": minRel,
		},
	})
}

func filterSites(sites []model.Site, region, state string, minClean, minTrans, minRel *float64) []model.Site {
	out := make([]model.Site, 0, len(sites))
	for _, n := range sites {
		if region != "" && n.Region != region {
			continue
		}
		if state != "" && n.State != state {
			continue
		}
		if minClean != nil && n.CleanGen < *minClean {
			continue
		}
		if minTrans != nil && n.TransmissionHeadroom < *minTrans {
			continue
		}
		if minRel != nil && n.Reliability < *minRel {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (s *apiServer) handleNodesGeoJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nodes := filterSites(s.env.Catalog.Sites(), q.Get("region"), q.Get("state"), nil, nil, nil)
	respondJSON(w, http.StatusOK, model.SiteCollection(nodes))
}

func (s *apiServer) handleNode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "nodeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "node id must be an integer")
		return
	}
	node, err := s.env.Catalog.SiteByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("grid node %d not found", id))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"node": node})
}

func (s *apiServer) handleRegions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, distinctSiteValues(s.env.Catalog.Sites(), func(n model.Site) string { return n.Region }, "regions"))
}

func (s *apiServer) handleStates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, distinctSiteValues(s.env.Catalog.Sites(), func(n model.Site) string { return n.State }, "states"))
}

func distinctSiteValues(sites []model.Site, get func(model.Site) string, key string) map[string]any {
	seen := make(map[string]bool)
	for _, n := range sites {
		if v := get(n); v != "" {
			seen[v] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return map[string]any{key: values, "total": len(values)}
}

func plantFilterFromQuery(r *http.Request) catalog.PlantFilter {
	q := r.URL.Query()
	f := catalog.PlantFilter{
		RenewableOnly: q.Get("renewable_only") == "true",
		CleanOnly:     q.Get("clean_only") == "true",
	}
	if cats, ok := q["fuel_category"]; ok {
		f.FuelCategories = cats
	}
	if v, err := strconv.ParseFloat(q.Get("min_capacity_mw"), 64); err == nil {
		f.MinCapacityMW = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_capacity_mw"), 64); err == nil {
		f.MaxCapacityMW = v
	}
	return f
}

func (s *apiServer) handlePlants(w http.ResponseWriter, r *http.Request) {
	if len(s.env.Catalog.Plants()) == 0 {
		respondError(w, http.StatusServiceUnavailable, "power plant data not available")
		return
	}

	filtered := s.env.Catalog.FilterPlants(plantFilterFromQuery(r))
	if limit := queryInt(r, "limit", 0); limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	var totalMW float64
	for _, p := range filtered {
		totalMW += p.NameplateMW
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"plants":            filtered,
		"total":             len(filtered),
		"total_capacity_mw": round1(totalMW),
	})
}

func (s *apiServer) handlePlantsGeoJSON(w http.ResponseWriter, r *http.Request) {
	if len(s.env.Catalog.Plants()) == 0 {
		respondError(w, http.StatusServiceUnavailable, "power plant data not available")
		return
	}
	filtered := s.env.Catalog.FilterPlants(plantFilterFromQuery(r))
	respondJSON(w, http.StatusOK, model.PlantCollection(filtered))
}

func (s *apiServer) handlePlantStats(w http.ResponseWriter, r *http.Request) {
	plants := s.env.Catalog.Plants()
	if len(plants) == 0 {
		respondError(w, http.StatusServiceUnavailable, "power plant data not available")
		return
	}

	var renewable, clean int
	for _, p := range plants {
		if p.IsRenewable() {
			renewable++
		}
		if p.IsClean() {
			clean++
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_plants":         len(plants),
		"renewable_count":      renewable,
		"renewable_percentage": round1(float64(renewable) / float64(len(plants)) * 100),
		"clean_count":          clean,
		"clean_percentage":     round1(float64(clean) / float64(len(plants)) * 100),
		"by_fuel_category":     s.env.Catalog.FuelCategoryStats(),
	})
}

func (s *apiServer) handleFuelCategories(w http.ResponseWriter, r *http.Request) {
	stats := s.env.Catalog.FuelCategoryStats()
	if len(stats) == 0 {
		respondError(w, http.StatusServiceUnavailable, "power plant data not available")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"fuel_categories": stats,
		"total":           len(stats),
	})
}

// sitingRequest is the evaluate request body. Missing weights fall back to
// the defaults; a demand profile is present when size_mw is set.
type sitingRequest struct {
	SiteID int `json:"site_id"`

	WeightClean        *float64 `json:"weight_clean"`
	WeightTransmission *float64 `json:"weight_transmission"`
	WeightReliability  *float64 `json:"weight_reliability"`

	DemandType    string  `json:"demand_type"`
	SizeMW        int     `json:"size_mw"`
	LoadFactor    float64 `json:"load_factor"`
	DurationYears int     `json:"duration_years"`
}

func (req sitingRequest) weights() model.Weights {
	w := model.DefaultWeights()
	if req.WeightClean != nil {
		w.Clean = *req.WeightClean
	}
	if req.WeightTransmission != nil {
		w.Transmission = *req.WeightTransmission
	}
	if req.WeightReliability != nil {
		w.Reliability = *req.WeightReliability
	}
	return w
}

func (req sitingRequest) demand() (*model.DemandProfile, error) {
	if req.SizeMW == 0 {
		return nil, nil
	}
	d := &model.DemandProfile{
		DemandType:    req.DemandType,
		SizeMW:        req.SizeMW,
		LoadFactor:    req.LoadFactor,
		DurationYears: req.DurationYears,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *apiServer) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req sitingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	site, err := s.env.Catalog.SiteByID(req.SiteID)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("grid node %d not found", req.SiteID))
		return
	}

	weights := req.weights()
	demand, err := req.demand()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation, err := s.env.Engine.EvaluateSite(site, &weights, demand, s.env.Catalog.Sites(), s.env.Catalog.Plants())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	zap.L().Info("evaluated site",
		zap.Int("site_id", site.ID),
		zap.Float64("composite", evaluation.ScoreBreakdown.CompositeScore),
	)
	respondJSON(w, http.StatusOK, evaluation)
}

type locationRequest struct {
	sitingRequest
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name"`
}

func (s *apiServer) handleEvaluateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weights := req.weights()
	demand, err := req.demand()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc := model.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	candidates := make([]model.Coordinate, 0)
	for _, site := range s.env.Catalog.Sites() {
		candidates = append(candidates, site.Coordinates)
	}

	evaluation, err := s.env.Engine.EvaluateLocation(loc, req.LocationName, s.env.Catalog.Plants(), candidates, weights, demand)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, evaluation)
}

func weightsFromQuery(r *http.Request) model.Weights {
	w := model.DefaultWeights()
	if v, err := queryFloat(r, "weight_clean"); err == nil && v != nil {
		w.Clean = *v
	}
	if v, err := queryFloat(r, "weight_transmission"); err == nil && v != nil {
		w.Transmission = *v
	}
	if v, err := queryFloat(r, "weight_reliability"); err == nil && v != nil {
		w.Reliability = *v
	}
	return w
}

func (s *apiServer) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	siteID := queryInt(r, "site_id", -1)
	reference, err := s.env.Catalog.SiteByID(siteID)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("grid node %d not found", siteID))
		return
	}

	weights := weightsFromQuery(r)
	limit := queryInt(r, "limit", 5)

	alternatives, err := s.env.Engine.Alternatives(reference, s.env.Catalog.Sites(), weights, limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reference_site_id":   siteID,
		"reference_site_name": reference.Name,
		"alternatives":        alternatives,
		"weights_used":        weights,
	})
}

func (s *apiServer) handleRankings(w http.ResponseWriter, r *http.Request) {
	weights := weightsFromQuery(r)

	sites := s.env.Catalog.Sites()
	ranked, err := s.env.Engine.Rank(sites, weights)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if limit := queryInt(r, "limit", 0); limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	rankings := make([]map[string]any, 0, len(ranked))
	for i, rs := range ranked {
		rankings = append(rankings, map[string]any{
			"rank":                  i + 1,
			"id":                    rs.Site.ID,
			"name":                  rs.Site.Name,
			"composite_score":       rs.Score,
			"clean_gen":             rs.Site.CleanGen,
			"transmission_headroom": rs.Site.TransmissionHeadroom,
			"reliability":           rs.Site.Reliability,
			"region":                rs.Site.Region,
			"state":                 rs.Site.State,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"rankings":     rankings,
		"total_sites":  len(sites),
		"weights_used": weights,
	})
}

type saveScenarioRequest struct {
	Name       string               `json:"name"`
	Evaluation model.SiteEvaluation `json:"evaluation"`
}

func (s *apiServer) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var req saveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		req.Name = req.Evaluation.Site.Name
	}

	saved, err := s.env.Store.SaveEvaluation(r.Context(), req.Name, req.Evaluation)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	zap.L().Info("saved scenario",
		zap.String("scenario_id", saved.ID),
		zap.Int("site_id", req.Evaluation.Site.ID),
	)
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "saved",
		"scenario_id": saved.ID,
	})
}

func (s *apiServer) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	filter := store.EvaluationFilter{
		SiteID: queryInt(r, "site_id", 0),
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}
	scenarios, err := s.env.Store.ListEvaluations(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"scenarios": scenarios,
		"total":     len(scenarios),
	})
}

func (s *apiServer) handleClearScenarios(w http.ResponseWriter, r *http.Request) {
	n, err := s.env.Store.ClearEvaluations(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	zap.L().Info("cleared scenarios", zap.Int64("deleted", n))
	respondJSON(w, http.StatusOK, map[string]any{
		"status":            "cleared",
		"scenarios_deleted": n,
	})
}

type compareRequest struct {
	ScenarioIDs  []string `json:"scenario_ids"`
	ScenarioName string   `json:"scenario_name"`
}

func (s *apiServer) handleCompareScenarios(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.ScenarioIDs) == 0 {
		respondError(w, http.StatusBadRequest, "must provide at least one scenario ID")
		return
	}
	if req.ScenarioName == "" {
		req.ScenarioName = "Comparison"
	}

	evaluations := make([]model.SiteEvaluation, 0, len(req.ScenarioIDs))
	for _, id := range req.ScenarioIDs {
		saved, err := s.env.Store.GetEvaluation(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusNotFound, fmt.Sprintf("scenario %s not found", id))
			return
		}
		evaluations = append(evaluations, saved.Evaluation)
	}

	comparison, err := s.env.Engine.CompareScenarios(evaluations, req.ScenarioName)
	if err != nil {
		if errors.Is(err, siting.ErrNoEvaluations) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if saved, err := s.env.Store.SaveComparison(r.Context(), comparison); err != nil {
		zap.L().Warn("comparison persist failed", zap.Error(err))
	} else {
		zap.L().Info("saved comparison", zap.String("comparison_id", saved.ID))
	}

	respondJSON(w, http.StatusOK, comparison)
}

func (s *apiServer) handleNearbySources(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "nodeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "node id must be an integer")
		return
	}
	node, err := s.env.Catalog.SiteByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("grid node %d not found", id))
		return
	}

	maxKM := 300.0
	if v, err := queryFloat(r, "max_distance_km"); err == nil && v != nil {
		maxKM = *v
	}
	limit := queryInt(r, "limit", 10)

	type nearbySource struct {
		Name         string  `json:"name"`
		EnergySource string  `json:"energy_source"`
		CapacityMW   float64 `json:"capacity_mw"`
		DistanceKM   float64 `json:"distance_km"`
	}

	var nearby []nearbySource
	for _, src := range s.env.Catalog.Sources() {
		if !src.Located() {
			continue
		}
		d := scoring.Distance(node.Coordinates, *src.Coordinate)
		if d > maxKM {
			continue
		}
		nearby = append(nearby, nearbySource{
			Name:         src.Name,
			EnergySource: src.EnergyType,
			CapacityMW:   src.PPACapacityMW,
			DistanceKM:   round1(d),
		})
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceKM < nearby[j].DistanceKM })
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"node_id":        id,
		"node_name":      node.Name,
		"nearby_sources": nearby,
		"total":          len(nearby),
	})
}

func (s *apiServer) handleSources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	energyType := q.Get("energy_type")
	minCapacity, err := queryFloat(r, "min_capacity")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sources := s.env.Catalog.Sources()
	filtered := make([]model.EnergySource, 0, len(sources))
	var totalMW float64
	for _, src := range sources {
		if energyType != "" && !strings.EqualFold(src.EnergyType, energyType) {
			continue
		}
		if minCapacity != nil && src.PPACapacityMW < *minCapacity {
			continue
		}
		filtered = append(filtered, src)
		totalMW += src.PPACapacityMW
	}
	if limit := queryInt(r, "limit", 0); limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sources":           filtered,
		"total":             len(filtered),
		"total_capacity_mw": round1(totalMW),
	})
}

func (s *apiServer) handleSourcesGeoJSON(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, model.SourceCollection(s.env.Catalog.Sources()))
}

func (s *apiServer) handleSourceStats(w http.ResponseWriter, r *http.Request) {
	sources := s.env.Catalog.Sources()

	type typeStat struct {
		Count      int     `json:"count"`
		CapacityMW float64 `json:"capacity_mw"`
	}
	byType := make(map[string]*typeStat)
	var totalMW float64
	var geocoded int
	for _, src := range sources {
		st, ok := byType[src.EnergyType]
		if !ok {
			st = &typeStat{}
			byType[src.EnergyType] = st
		}
		st.Count++
		st.CapacityMW += src.PPACapacityMW
		totalMW += src.PPACapacityMW
		if src.Located() {
			geocoded++
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_sources":     len(sources),
		"total_capacity_mw": round1(totalMW),
		"by_type":           byType,
		"geocoded_count":    geocoded,
		"using_real_scores": len(sources) > 0,
	})
}

func (s *apiServer) handleReload(w http.ResponseWriter, r *http.Request) {
	sources, err := loadSources(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to reload data: %v", err))
		return
	}
	if sources != nil {
		s.env.Catalog.SetSources(sources)
	}

	if err := catalog.RecalculateScores(r.Context(), s.env.Catalog, cfg.Scoring.DefaultDemandMW); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to recalculate scores: %v", err))
		return
	}

	sites := s.env.Catalog.Sites()
	if err := s.env.Store.SaveSites(r.Context(), sites); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to persist sites: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":                "success",
		"energy_sources_loaded": len(s.env.Catalog.Sources()),
		"power_plants_loaded":   len(s.env.Catalog.Plants()),
		"grid_nodes_updated":    len(sites),
	})
}
