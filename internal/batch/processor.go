// Package batch bakes several skeleton/atlas jobs concurrently.
package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"spine-mesh-baker/internal/atlas"
	"spine-mesh-baker/internal/config"
	"spine-mesh-baker/internal/export"
	"spine-mesh-baker/internal/logging"
	"spine-mesh-baker/internal/mesh"
	"spine-mesh-baker/internal/postprocess"
	"spine-mesh-baker/internal/raster"
	"spine-mesh-baker/internal/scene"
	"spine-mesh-baker/internal/skeleton"
	"spine-mesh-baker/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Textures    *texture.Cache
	Adjustment  int
	StrictBones bool
	RenderSize  int
	Supersample int
	Workers     int
	Preview     bool
	OBJ         bool
}

// Result holds the outcome of baking one job.
type Result struct {
	Name     string
	Texture  string
	OBJ      string
	Preview  string
	Report   *mesh.Report
	Vertices int
	Faces    int
	Duration time.Duration
	Success  bool
	Error    string
}

// Run bakes all jobs using a worker pool. Results are in job order.
func Run(cfg Config, jobs []config.Job) []Result {
	if cfg.Textures == nil {
		cfg.Textures = texture.NewCache()
	}
	workers := max(cfg.Workers, 1)

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	log := logging.Logger()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total, "jobs_per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job config.Job) Result {
	start := time.Now()
	res := Result{Name: job.Name}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		logging.Logger().Error("batch: job failed", "job", job.Name, "err", err)
		return res
	}

	a, err := atlas.ParseFile(job.Atlas)
	if err != nil {
		return fail(err)
	}
	info := atlas.Resolve(a)

	doc, err := skeleton.Load(job.Skeleton)
	if err != nil {
		return fail(err)
	}

	res.Texture = texturePath(job, info)

	s := scene.New(cfg.Textures)
	report, err := mesh.Build(doc, info, s, mesh.Options{
		TextureSizeAdjustment: cfg.Adjustment,
		TexturePath:           res.Texture,
		StrictBones:           cfg.StrictBones,
	})
	if err != nil {
		return fail(err)
	}
	res.Report = report
	res.Vertices, res.Faces = s.Stats()

	if cfg.OBJ {
		res.OBJ, err = export.SaveOBJ(cfg.OutputDir, job.Name, s)
		if err != nil {
			return fail(err)
		}
	}

	if cfg.Preview {
		img := raster.RenderScene(s, cfg.RenderSize, cfg.Supersample)
		if cfg.Supersample > 1 {
			img = postprocess.Downsample(img, cfg.RenderSize, cfg.RenderSize)
		}
		res.Preview = filepath.Join(cfg.OutputDir, job.Name+".webp")
		if err := export.SaveWebP(res.Preview, img); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	res.Duration = time.Since(start)
	return res
}

// texturePath returns the explicit job texture, or the atlas page image
// found in the atlas directory tree.
func texturePath(job config.Job, info atlas.Info) string {
	if job.Texture != "" {
		return job.Texture
	}
	if info.Page == "" {
		return ""
	}
	idx := texture.BuildIndex(filepath.Dir(job.Atlas))
	if path, ok := idx.ResolvePath(info.Page); ok {
		return path
	}
	logging.Logger().Warn("batch: page image not found", "job", job.Name, "page", info.Page)
	return ""
}
