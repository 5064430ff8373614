package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// NavSim holds all configuration for the navigation simulation server.
type NavSim struct {
	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// World layout
	RegionCells int     `yaml:"region_cells"` // cells per region side
	CellSize    float64 `yaml:"cell_size"`    // world units per cell
	RegionsX    int     `yaml:"regions_x"`    // regions to load along X
	RegionsZ    int     `yaml:"regions_z"`    // regions to load along Z

	// Simulation
	TickIntervalMs int     `yaml:"tick_interval_ms"`
	Agents         int     `yaml:"agents"`
	AgentSpeed     float64 `yaml:"agent_speed"`  // world units per second
	WanderRange    float64 `yaml:"wander_range"` // world units around spawn

	// Obstacle store (optional — skipped when disabled)
	UseDatabase bool           `yaml:"use_database"`
	MapID       int32          `yaml:"map_id"`
	Database    DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TickInterval returns the simulation tick interval as a duration.
func (c NavSim) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// DefaultNavSim returns NavSim config with sensible defaults.
func DefaultNavSim() NavSim {
	return NavSim{
		LogLevel:       "info",
		RegionCells:    128,
		CellSize:       1.0,
		RegionsX:       2,
		RegionsZ:       2,
		TickIntervalMs: 100,
		Agents:         25,
		AgentSpeed:     4.0,
		WanderRange:    20.0,
		UseDatabase:    false,
		MapID:          1,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "navcore",
			Password: "navcore",
			DBName:   "navcore",
			SSLMode:  "disable",
		},
	}
}

// LoadNavSim loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadNavSim(path string) (NavSim, error) {
	cfg := DefaultNavSim()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
