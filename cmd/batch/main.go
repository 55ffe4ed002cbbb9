// Batch entrypoint: processes every vendor file pair found in the input
// directory and writes the per-vendor outputs plus a summary workbook.
package main

import (
	"flag"
	"os"

	"catalog-recon/internal/batch"
	"catalog-recon/internal/config"
)

func main() {
	var (
		mode = flag.String("mode", "prices", "prices | discontinued")
		in   = flag.String("in", "", "input directory (overrides INPUT_DIR)")
		out  = flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
	)
	flag.Parse()

	cfg := config.Load()
	if *in != "" {
		cfg.InputDir = *in
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	logger := config.SetupLogger(cfg)

	runner := batch.NewRunner(cfg, logger)

	var err error
	switch *mode {
	case "prices":
		_, err = runner.RunPrices()
	case "discontinued":
		_, err = runner.RunDiscontinued()
	default:
		logger.Error().Str("mode", *mode).Msg("unknown mode")
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Str("mode", *mode).Msg("batch run failed")
		os.Exit(1)
	}
}
