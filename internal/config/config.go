package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800
	WindowTitle  = "Ambient Field"

	// ContainerID is the mount point the host exposes for the renderer.
	ContainerID = "ambient-field"

	// Viewport
	MinPixelRatio = 1.0
	MaxPixelRatio = 2.0

	// Particle population
	MinParticles     = 72
	AreaPerParticle  = 17000.0
	ParticleMinVX    = -0.24
	ParticleMaxVX    = 0.24
	ParticleMinVY    = -0.2
	ParticleMaxVY    = 0.2
	ParticleMinR     = 1.5
	ParticleMaxR     = 3.4
	ParticleLinkD2   = 12500.0
	LinkAlpha        = 0.13
	LinkWidth        = 0.7
	QuietLinkFactor  = 0.2
	ParticleAlpha    = 0.92
	QuietAlpha       = 0.38
	QuietRadiusScale = 0.8

	// Pointer interaction
	PointerStaleMs    = 1800.0
	PointerInfluenceD = 42000.0
	PointerForce      = 0.03
	PointerGain       = 0.05
	MaxSpeedActive    = 2.4
	MaxSpeedIdle      = 1.2
	Damping           = 0.992

	// Blobs
	BlobCount     = 3
	BlobMinRadius = 180.0
	BlobMaxRadius = 300.0
	BlobMaxSpeed  = 0.04
	BlobMinAlpha  = 0.06
	BlobMaxAlpha  = 0.11
	BlobMargin    = 120.0

	// Quiet zone, as fractions of the viewport
	QuietLeft   = 0.27
	QuietRight  = 0.73
	QuietTop    = 0.14
	QuietBottom = 0.82

	// Scan band
	BandHalfHeight = 80.0
	BandRate       = 0.6
	BandAlpha      = 0.05
)

// Config is the process-level configuration of the desktop host.
type Config struct {
	AppEnv       string
	LogLevel     string
	Title        string
	WindowWidth  int
	WindowHeight int
}

// Load reads the host configuration from the environment, falling back to
// the package defaults.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:       os.Getenv("APP_ENV"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		Title:        os.Getenv("FIELD_TITLE"),
		WindowWidth:  WindowWidth,
		WindowHeight: WindowHeight,
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Title == "" {
		cfg.Title = WindowTitle
	}
	var err error
	if v := os.Getenv("FIELD_WINDOW_WIDTH"); v != "" {
		cfg.WindowWidth, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FIELD_WINDOW_WIDTH: %w", err)
		}
	}
	if v := os.Getenv("FIELD_WINDOW_HEIGHT"); v != "" {
		cfg.WindowHeight, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FIELD_WINDOW_HEIGHT: %w", err)
		}
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	return cfg, nil
}
