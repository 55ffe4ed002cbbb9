// Batch processing of a directory of vendor file pairs. Each pair is loaded,
// matched and written out independently; a failing pair is skipped with a
// diagnostic and never aborts the run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/catalog/service"
	"catalog-recon/internal/catalog/sizemap"
	"catalog-recon/internal/catalog/tables"
	"catalog-recon/internal/config"
	"catalog-recon/internal/fileio"
)

type Runner struct {
	cfg   config.Config
	log   zerolog.Logger
	rules []sizemap.Rule
	table sizemap.Table
}

func NewRunner(cfg config.Config, log zerolog.Logger) *Runner {
	rules := sizemap.DefaultRules()
	if cfg.SizeRules != "" {
		rules = sizemap.ParseRules(cfg.SizeRules)
	}
	return &Runner{cfg: cfg, log: log, rules: rules, table: sizemap.DefaultTable()}
}

func (r *Runner) prepare() ([]Pair, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	pairs, unpaired, err := DiscoverPairs(r.cfg.InputDir)
	if err != nil {
		return nil, err
	}
	for _, f := range unpaired {
		r.log.Warn().Str("file", filepath.Base(f)).Msg("no vendor file found, skipping")
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no vendor file pairs found in %s", r.cfg.InputDir)
	}
	r.log.Info().Int("pairs", len(pairs)).Msg("vendor file pairs discovered")
	return pairs, nil
}

// RunPrices processes every discovered pair in price-matching mode and
// writes the aggregate summary workbook.
func (r *Runner) RunPrices() ([]model.VendorPriceSummary, error) {
	pairs, err := r.prepare()
	if err != nil {
		return nil, err
	}

	var results []model.VendorPriceSummary
	for _, p := range pairs {
		res, err := r.pricePair(p)
		if err != nil {
			r.log.Error().Err(err).Str("vendor", p.Vendor).Msg("pair skipped")
			continue
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no vendors were successfully processed")
	}

	reportPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("Processing_Summary_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := fileio.WritePriceSummary(reportPath, results); err != nil {
		return results, fmt.Errorf("write summary: %w", err)
	}

	total, matched := 0, 0
	for _, res := range results {
		total += res.TotalSKUs
		matched += res.MatchedSKUs
	}
	rate := 0.0
	if total > 0 {
		rate = float64(matched) / float64(total) * 100
	}
	r.log.Info().
		Int("vendors", len(results)).
		Int("total_skus", total).
		Int("matched", matched).
		Float64("match_rate", rate).
		Str("report", filepath.Base(reportPath)).
		Msg("price run complete")
	return results, nil
}

func (r *Runner) pricePair(p Pair) (model.VendorPriceSummary, error) {
	log := r.log.With().Str("vendor", p.Vendor).Logger()
	log.Info().
		Str("internal", filepath.Base(p.InternalPath)).
		Str("vendor_file", filepath.Base(p.VendorPath)).
		Msg("processing")

	internalMaps, err := fileio.ReadXLSXFile(p.InternalPath, 1)
	if err != nil {
		return model.VendorPriceSummary{}, fmt.Errorf("read internal table: %w", err)
	}
	vendorMaps, err := fileio.ReadXLSXFile(p.VendorPath, 1)
	if err != nil {
		return model.VendorPriceSummary{}, fmt.Errorf("read vendor table: %w", err)
	}

	codes, err := tables.ExtractCodes(internalMaps, "")
	if err != nil {
		return model.VendorPriceSummary{}, fmt.Errorf("internal table: %w", err)
	}
	vendor, err := tables.ExtractVendorRows(vendorMaps, tables.VendorColumns{}, true, false)
	if err != nil {
		return model.VendorPriceSummary{}, fmt.Errorf("vendor table: %w", err)
	}

	res := service.MatchPrices(codes, vendor, r.rules, r.table)
	if res.DuplicateKeys > 0 {
		log.Debug().Int("dup_keys", res.DuplicateKeys).Msg("duplicate vendor keys collapsed (last write wins)")
	}

	summary := model.VendorPriceSummary{
		Vendor:      p.Vendor,
		TotalSKUs:   len(codes),
		MatchedSKUs: len(res.Matched),
		RemovedSKUs: len(res.Unmatched),
	}
	if summary.TotalSKUs > 0 {
		summary.MatchRate = float64(summary.MatchedSKUs) / float64(summary.TotalSKUs) * 100
	}
	for _, m := range res.Matched {
		if m.SizeMapped {
			summary.SizeMapped++
		}
	}
	summary.RemovedItems = res.Unmatched

	if len(res.Matched) > 0 {
		out := filepath.Join(r.cfg.OutputDir, p.Vendor+"_OITM_Updated.xlsx")
		if err := fileio.WriteMatchedWorkbook(out, p.Vendor, res.Matched); err != nil {
			return model.VendorPriceSummary{}, fmt.Errorf("write output: %w", err)
		}
		summary.OutputFile = filepath.Base(out)
	}

	log.Info().
		Int("total", summary.TotalSKUs).
		Int("matched", summary.MatchedSKUs).
		Int("size_mapped", summary.SizeMapped).
		Int("removed", summary.RemovedSKUs).
		Msg("pair done")
	return summary, nil
}

// RunDiscontinued processes every discovered pair in deactivation mode and
// writes the aggregate summary workbook.
func (r *Runner) RunDiscontinued() ([]model.VendorDeactivationSummary, error) {
	pairs, err := r.prepare()
	if err != nil {
		return nil, err
	}

	var results []model.VendorDeactivationSummary
	for _, p := range pairs {
		res, err := r.discontinuedPair(p)
		if err != nil {
			r.log.Error().Err(err).Str("vendor", p.Vendor).Msg("pair skipped")
			continue
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no vendors were successfully processed")
	}

	reportPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("Deactivation_Summary_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := fileio.WriteDeactivationSummary(reportPath, results); err != nil {
		return results, fmt.Errorf("write summary: %w", err)
	}

	total := 0
	for _, res := range results {
		total += res.ToDeactivate
	}
	r.log.Info().
		Int("vendors", len(results)).
		Int("to_deactivate", total).
		Str("report", filepath.Base(reportPath)).
		Msg("deactivation run complete")
	return results, nil
}

func (r *Runner) discontinuedPair(p Pair) (model.VendorDeactivationSummary, error) {
	log := r.log.With().Str("vendor", p.Vendor).Logger()
	log.Info().
		Str("internal", filepath.Base(p.InternalPath)).
		Str("vendor_file", filepath.Base(p.VendorPath)).
		Msg("processing")

	// the OITM export used for deactivation carries a doubled header row
	internalMaps, err := fileio.ReadXLSXFile(p.InternalPath, 2)
	if err != nil {
		return model.VendorDeactivationSummary{}, fmt.Errorf("read internal table: %w", err)
	}
	vendorMaps, err := fileio.ReadXLSXFile(p.VendorPath, 1)
	if err != nil {
		return model.VendorDeactivationSummary{}, fmt.Errorf("read vendor table: %w", err)
	}

	codes, err := tables.ExtractCodes(internalMaps, "")
	if err != nil {
		return model.VendorDeactivationSummary{}, fmt.Errorf("internal table: %w", err)
	}
	vendor, err := tables.ExtractVendorRows(vendorMaps, tables.VendorColumns{}, false, true)
	if err != nil {
		return model.VendorDeactivationSummary{}, fmt.Errorf("vendor table: %w", err)
	}

	res := service.FindDiscontinued(codes, vendor)
	summary := model.VendorDeactivationSummary{
		Vendor:        p.Vendor,
		TotalInternal: res.TotalInternal,
		Discontinued:  res.DiscontinuedVendor,
		ToDeactivate:  len(res.Flagged),
	}

	if len(res.Flagged) > 0 {
		out := filepath.Join(r.cfg.OutputDir, p.Vendor+"_DEACTIVATE_DTW.xlsx")
		if err := fileio.WriteDeactivationWorkbook(out, res.Flagged); err != nil {
			return model.VendorDeactivationSummary{}, fmt.Errorf("write output: %w", err)
		}
		summary.OutputFile = filepath.Base(out)
	}

	log.Info().
		Int("total", summary.TotalInternal).
		Int("discontinued", summary.Discontinued).
		Int("flagged", summary.ToDeactivate).
		Msg("pair done")
	return summary, nil
}
