package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/ambient-field/internal/config"
	"github.com/iburimskiy/ambient-field/internal/field"
	"github.com/iburimskiy/ambient-field/internal/headless"
	"github.com/iburimskiy/ambient-field/internal/logger"
	"github.com/iburimskiy/ambient-field/internal/raster"
)

const frameInterval = time.Second / 60

type runOptions struct {
	width, height float64
	ratio         float64
	frames        int
	seed          uint64
	pointer       *[2]float64
}

type runStats struct {
	width, height  float64
	scale          float64
	backingW       int
	backingH       int
	frames         int
	particles      int
	blobs          int
	links          int
	faults         int
	pointerActive  bool
	renderDuration time.Duration
}

func main() {
	var (
		width    float64
		height   float64
		ratio    float64
		frames   int
		seed     uint64
		pointer  string
		out      string
		logLevel string
	)
	flag.Float64Var(&width, "width", 1000, "viewport width in logical pixels")
	flag.Float64Var(&height, "height", 800, "viewport height in logical pixels")
	flag.Float64Var(&ratio, "dpr", 1, "device pixel ratio (clamped to [1,2])")
	flag.IntVar(&frames, "frames", 120, "frames to simulate before the snapshot")
	flag.Uint64Var(&seed, "seed", 42, "RNG seed for particle and blob placement")
	flag.StringVar(&pointer, "pointer", "", "keep the pointer circling around x,y")
	flag.StringVar(&out, "out", "field.png", "PNG output path, empty to skip")
	flag.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		os.Exit(2)
	}
	opts := runOptions{width: width, height: height, ratio: ratio, frames: frames, seed: seed}
	if pointer != "" {
		p, err := parsePointer(pointer)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(2)
		}
		opts.pointer = &p
	}

	log, err := logger.New(logger.Config{LogLevel: logLevel, ServiceName: "field-snapshot"})
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	stats, surface := run(opts, log)
	printRun(os.Stdout, stats)

	if out == "" {
		return
	}
	if err := writeSnapshot(out, surface); err != nil {
		log.Error("snapshot not written", zap.String("path", out), zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("snapshot=%s\n", out)
}

func parsePointer(s string) ([2]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]float64{}, fmt.Errorf("pointer %q: want x,y", s)
	}
	var p [2]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [2]float64{}, fmt.Errorf("pointer %q: %w", s, err)
		}
		p[i] = v
	}
	return p, nil
}

func run(opts runOptions, log *zap.Logger) (runStats, *raster.Surface) {
	surface := raster.New()
	host := headless.New(
		headless.WithViewport(opts.width, opts.height, opts.ratio),
		headless.WithSurface(config.ContainerID, surface),
	)
	r := field.Mount(host, config.ContainerID, field.WithSeed(opts.seed), field.WithLogger(log))
	defer r.Unmount()

	started := time.Now()
	for i := 0; i < opts.frames; i++ {
		if opts.pointer != nil {
			a := float64(i) * 0.05
			host.MovePointer(opts.pointer[0]+40*math.Cos(a), opts.pointer[1]+40*math.Sin(a))
		}
		host.Step(frameInterval)
	}

	vp := r.Viewport()
	bw, bh := surface.Size()
	st := r.Stats()
	return runStats{
		width:          vp.Width,
		height:         vp.Height,
		scale:          vp.Scale,
		backingW:       bw,
		backingH:       bh,
		frames:         st.Frames,
		particles:      len(r.Particles()),
		blobs:          len(r.Blobs()),
		links:          st.LastLinks,
		faults:         st.Faults,
		pointerActive:  r.Pointer().Active,
		renderDuration: time.Since(started),
	}, surface
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "=== Ambient Field Snapshot ===\n")
	fmt.Fprintf(w, "viewport=%.0fx%.0f scale=%.2f backing=%dx%d\n", rs.width, rs.height, rs.scale, rs.backingW, rs.backingH)
	fmt.Fprintf(w, "frames=%d faults=%d render_time=%s\n", rs.frames, rs.faults, rs.renderDuration.Round(time.Millisecond))
	fmt.Fprintf(w, "particles=%d blobs=%d links_last_frame=%d pointer_active=%t\n", rs.particles, rs.blobs, rs.links, rs.pointerActive)
}

func writeSnapshot(path string, s *raster.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
