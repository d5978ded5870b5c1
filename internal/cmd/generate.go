package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/ksk1130/tsvloggen/internal/aggregator"
	"github.com/ksk1130/tsvloggen/internal/catalog"
	"github.com/ksk1130/tsvloggen/internal/config"
	"github.com/ksk1130/tsvloggen/internal/fields"
	"github.com/ksk1130/tsvloggen/internal/hub"
	"github.com/ksk1130/tsvloggen/internal/manifest"
	"github.com/ksk1130/tsvloggen/internal/model"
	"github.com/ksk1130/tsvloggen/internal/output"
	"github.com/ksk1130/tsvloggen/internal/synth"
	"github.com/ksk1130/tsvloggen/internal/writer"
)

func runGenerate(ctx context.Context, v *viper.Viper, stdout io.Writer) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Printf("interrupted, closing %s", cfg.OutputPath)
			cancel()
		case <-ctx.Done():
		}
	}()

	// --- Build generator ---
	seed := cfg.Seed
	if !cfg.SeedSet {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	pools := fields.NewPools(rng)
	gen, err := synth.New(catalog.Default(), fields.New(rng, pools, time.Now), rng, cfg.Start)
	if err != nil {
		return err
	}

	// --- Choose renderer ---
	var renderer output.Renderer
	switch cfg.Format {
	case config.FormatJSON:
		renderer = output.NewJSONRenderer(stdout)
	default:
		renderer = output.NewTextRenderer(stdout)
	}

	agg := aggregator.New()
	observers := hub.New(agg)
	if !cfg.Quiet {
		observers.Subscribe(renderer)
		if err := renderer.Start(cfg.OutputPath, cfg.TargetSizeBytes); err != nil {
			return err
		}
	}

	// --- Run ---
	res, err := writer.Run(ctx, writer.Options{
		Path:          cfg.OutputPath,
		TargetBytes:   cfg.TargetSizeBytes,
		ProgressEvery: cfg.ProgressEvery,
	}, gen, observers)
	if err != nil {
		return err
	}

	stats := agg.Snapshot()
	summary := model.Summary{
		Path:          cfg.OutputPath,
		Lines:         res.Lines,
		Bytes:         res.Bytes,
		TargetBytes:   cfg.TargetSizeBytes,
		Seed:          seed,
		Checksum:      fmt.Sprintf("%016x", res.Checksum),
		Elapsed:       res.Elapsed.Truncate(time.Millisecond).String(),
		LinesPerSec:   stats.LinesPerSec,
		LevelCounts:   stats.LevelCounts,
		ServiceCounts: stats.ServiceCounts,
	}

	if cfg.ManifestPath != "" {
		if err := manifest.Write(cfg.ManifestPath, manifest.New(summary, time.Now())); err != nil {
			return err
		}
		log.Printf("manifest written to %s", cfg.ManifestPath)
	}

	if cfg.Quiet {
		return nil
	}
	return renderer.Summary(summary)
}
