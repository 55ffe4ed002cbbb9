package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/catalog/service"
	"catalog-recon/internal/catalog/sizemap"
	"catalog-recon/internal/catalog/tables"
	"catalog-recon/internal/config"
	"catalog-recon/internal/fileio"
	"catalog-recon/internal/middleware"
)

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

type priceResponse struct {
	Vendor    string            `json:"vendor,omitempty"`
	TotalSKUs int               `json:"totalSkus"`
	Matched   int               `json:"matched"`
	Removed   int               `json:"removed"`
	MatchRate float64           `json:"matchRate"`
	Result    model.MatchResult `json:"result"`
}

// uploadedTables reads the "internal" and "vendor" multipart files into row
// maps. Header rows are 1-based form fields; the internal default differs
// per mode (the deactivation OITM export carries a doubled header).
func uploadedTables(w http.ResponseWriter, r *http.Request, internalHeaderDef int) (internalRows, vendorRows []map[string]string, ok bool) {
	if err := r.ParseMultipartForm(200 << 20); err != nil { // 200MB
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	fileInt, headerInt, err := r.FormFile("internal")
	if err != nil {
		http.Error(w, "missing internal file: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	defer fileInt.Close()

	fileVen, headerVen, err := r.FormFile("vendor")
	if err != nil {
		http.Error(w, "missing vendor file: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	defer fileVen.Close()

	internalRows, err = fileio.ReadAnyMaps(fileInt, headerInt.Filename, atoi(r.FormValue("internal_header_row"), internalHeaderDef))
	if err != nil {
		http.Error(w, "failed to read internal table: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	vendorRows, err = fileio.ReadAnyMaps(fileVen, headerVen.Filename, atoi(r.FormValue("vendor_header_row"), 1))
	if err != nil {
		http.Error(w, "failed to read vendor table: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return internalRows, vendorRows, true
}

func vendorColumnsFromForm(r *http.Request) tables.VendorColumns {
	return tables.VendorColumns{
		Style:   r.FormValue("vendor_style"),
		Color:   r.FormValue("vendor_color"),
		Size:    r.FormValue("vendor_size"),
		Variant: r.FormValue("vendor_variant"),
		Price:   r.FormValue("vendor_price"),
		Name:    r.FormValue("vendor_name"),
	}
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func requestLogger(r *http.Request, logger zerolog.Logger) zerolog.Logger {
	if reqID := middleware.GetRequestID(r); reqID != "" {
		return logger.With().Str("req_id", reqID).Logger()
	}
	return logger
}

// MatchPrices handles POST /match/prices: multipart upload of an internal
// item table plus a vendor price list, JSON match result back.
func MatchPrices(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	rules := sizemap.DefaultRules()
	if cfg.SizeRules != "" {
		rules = sizemap.ParseRules(cfg.SizeRules)
	}
	table := sizemap.DefaultTable()

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(r, logger)
		defer r.Body.Close()

		internalMaps, vendorMaps, ok := uploadedTables(w, r, 1)
		if !ok {
			return
		}

		codes, err := tables.ExtractCodes(internalMaps, r.FormValue("internal_code"))
		if err != nil {
			http.Error(w, "internal table: "+err.Error(), http.StatusBadRequest)
			return
		}
		vendor, err := tables.ExtractVendorRows(vendorMaps, vendorColumnsFromForm(r), true, false)
		if err != nil {
			http.Error(w, "vendor table: "+err.Error(), http.StatusBadRequest)
			return
		}

		res := service.MatchPrices(codes, vendor, rules, table)
		rate := 0.0
		if len(codes) > 0 {
			rate = float64(len(res.Matched)) / float64(len(codes)) * 100
		}

		writeJSON(w, log, priceResponse{
			Vendor:    r.FormValue("vendor_code"),
			TotalSKUs: len(codes),
			Matched:   len(res.Matched),
			Removed:   len(res.Unmatched),
			MatchRate: rate,
			Result:    res,
		})

		log.Info().
			Int("internal", len(codes)).
			Int("vendor", len(vendor)).
			Int("matched", len(res.Matched)).
			Int("dup_keys", res.DuplicateKeys).
			Dur("elapsed", time.Since(start)).
			Msg("price match done")
	}
}

// FindDiscontinued handles POST /match/discontinued: flags internal items
// whose vendor listing carries the DISCONTINUED marker.
func FindDiscontinued(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(r, logger)
		defer r.Body.Close()

		internalMaps, vendorMaps, ok := uploadedTables(w, r, 2)
		if !ok {
			return
		}

		codes, err := tables.ExtractCodes(internalMaps, r.FormValue("internal_code"))
		if err != nil {
			http.Error(w, "internal table: "+err.Error(), http.StatusBadRequest)
			return
		}
		vendor, err := tables.ExtractVendorRows(vendorMaps, vendorColumnsFromForm(r), false, true)
		if err != nil {
			http.Error(w, "vendor table: "+err.Error(), http.StatusBadRequest)
			return
		}

		res := service.FindDiscontinued(codes, vendor)
		writeJSON(w, log, res)

		log.Info().
			Int("internal", len(codes)).
			Int("vendor", len(vendor)).
			Int("discontinued", res.DiscontinuedVendor).
			Int("flagged", len(res.Flagged)).
			Dur("elapsed", time.Since(start)).
			Msg("discontinuation scan done")
	}
}
