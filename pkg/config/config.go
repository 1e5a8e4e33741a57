// Package config loads the building layout and the web driver settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-elevator-dispatch/pkg/elevator"
)

// CarSpec is one car entry of the building file.
type CarSpec struct {
	ID         int `yaml:"id" json:"id"`
	StartFloor int `yaml:"startFloor" json:"startFloor"`
}

// Building is the on-disk description of a building.
//
//	floors: 10
//	cars:
//	  - id: 1
//	    startFloor: 0
type Building struct {
	Floors int       `yaml:"floors" json:"floors"`
	Cars   []CarSpec `yaml:"cars" json:"cars"`
}

// DefaultBuilding is used when no building file is configured.
func DefaultBuilding() Building {
	return Building{
		Floors: 10,
		Cars: []CarSpec{
			{ID: 1, StartFloor: 0},
			{ID: 2, StartFloor: 0},
			{ID: 3, StartFloor: 0},
		},
	}
}

// Load reads a building file from path.
func Load(path string) (Building, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Building{}, fmt.Errorf("read building config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML building description. Unknown keys are rejected.
func Parse(data []byte) (Building, error) {
	var b Building
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return Building{}, fmt.Errorf("decode building config: %w", err)
	}
	return b, nil
}

// ElevatorConfig converts the building into engine configuration.
// Range checks are left to elevator.New.
func (b Building) ElevatorConfig() elevator.Config {
	cfg := elevator.Config{Floors: b.Floors}
	for _, c := range b.Cars {
		cfg.Cars = append(cfg.Cars, elevator.CarConfig{ID: c.ID, StartFloor: c.StartFloor})
	}
	return cfg
}

// AppConfig holds the web driver settings.
type AppConfig struct {
	Port           string
	BuildingConfig string        // optional path to a building file
	TickInterval   time.Duration // how often the driver calls Step while running
}

const defaultTickInterval = time.Second

// LoadApp reads settings from the environment after loading envFile, if present.
// Variables already set in the environment win over the file.
func LoadApp(envFile string) (*AppConfig, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &AppConfig{
		Port:           os.Getenv("PORT"),
		BuildingConfig: os.Getenv("BUILDING_CONFIG"),
		TickInterval:   defaultTickInterval,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if raw := os.Getenv("TICK_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("TICK_INTERVAL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("TICK_INTERVAL must be positive, got %s", d)
		}
		cfg.TickInterval = d
	}
	return cfg, nil
}

// LoadBuilding returns the configured building, or DefaultBuilding when no path is set.
func (c *AppConfig) LoadBuilding() (Building, error) {
	if c.BuildingConfig == "" {
		return DefaultBuilding(), nil
	}
	return Load(c.BuildingConfig)
}
