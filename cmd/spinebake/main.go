package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spine-mesh-baker/internal/batch"
	"spine-mesh-baker/internal/config"
	"spine-mesh-baker/internal/logging"
	"spine-mesh-baker/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	skeletonPath := flag.String("skeleton", "", "Spine skeleton JSON (single job)")
	atlasPath := flag.String("atlas", "", "Spine atlas descriptor (single job)")
	texturePath := flag.String("texture", "", "Atlas page image (default: found next to the atlas)")
	outputDir := flag.String("output", "", "Output directory (default: baked)")
	adjust := flag.Int("adjust", 0, "Texture size adjustment 1-10 (default: 2)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	strict := flag.Bool("strict", false, "Fail on influences that reference unresolved bones")
	noPreview := flag.Bool("no-preview", false, "Skip WebP previews")
	noOBJ := flag.Bool("no-obj", false, "Skip OBJ/MTL export")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Error loading config: %v", err)))
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Skeleton:    *skeletonPath,
		Atlas:       *atlasPath,
		Texture:     *texturePath,
		OutputDir:   *outputDir,
		Adjustment:  *adjust,
		RenderSize:  *size,
		Workers:     *workers,
		StrictBones: *strict,
		NoPreview:   *noPreview,
		NoOBJ:       *noOBJ,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
	if len(cfg.Jobs) == 0 {
		fmt.Println("No jobs to bake. Use -skeleton/-atlas or -config.")
		os.Exit(0)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Error creating output dir: %v", err)))
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("Spine mesh baker"))
	fmt.Printf("Jobs: %d, Workers: %d, Adjustment: %d\n", len(cfg.Jobs), cfg.Workers, cfg.TextureSizeAdjustment)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println(ruleStyle.Render("------------------------------------------------------------"))

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Textures:    texture.NewCache(),
		Adjustment:  cfg.TextureSizeAdjustment,
		StrictBones: cfg.StrictBones,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Preview:     cfg.PreviewEnabled(),
		OBJ:         cfg.OBJEnabled(),
	}, cfg.Jobs)

	fmt.Println(ruleStyle.Render("------------------------------------------------------------"))
	fmt.Println(summary(results, time.Since(start)))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batch.NewManifest(cfg.OutputDir, results)); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Warning: %v", err)))
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	for _, r := range results {
		if !r.Success {
			os.Exit(1)
		}
	}
}
