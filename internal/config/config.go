package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mapforge/tilegrid/internal/tilemap"
)

// Config holds the tool configuration: logging, database connection
// and named map definitions.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Database DatabaseConfig `yaml:"database"`
	Maps     []MapConfig    `yaml:"maps"`
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

// MapConfig describes one map's immutable geometry and its tilesets.
type MapConfig struct {
	Name          string `yaml:"name"`
	Orientation   string `yaml:"orientation"`
	TileWidth     int32  `yaml:"tile_width"`
	TileHeight    int32  `yaml:"tile_height"`
	Width         int32  `yaml:"width"`
	Height        int32  `yaml:"height"`
	StaggerAxis   string `yaml:"stagger_axis"`
	StaggerIndex  string `yaml:"stagger_index"`
	HexSideLength int32  `yaml:"hex_side_length"`
	Infinite      bool   `yaml:"infinite"`
	ChunkWidth    int32  `yaml:"chunk_width"`
	ChunkHeight   int32  `yaml:"chunk_height"`

	Tilesets []TilesetConfig `yaml:"tilesets"`
}

// TilesetConfig declares one tileset's global id range and draw offset.
type TilesetConfig struct {
	Name      string  `yaml:"name"`
	FirstID   uint32  `yaml:"first_id"`
	TileCount uint32  `yaml:"tile_count"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
}

// Geometry builds the tilemap geometry from the config entry.
func (m MapConfig) Geometry() (tilemap.Geometry, error) {
	orientation, err := tilemap.ParseOrientation(m.Orientation)
	if err != nil {
		return tilemap.Geometry{}, fmt.Errorf("map %q: %w", m.Name, err)
	}

	axis := tilemap.StaggerY
	if m.StaggerAxis != "" {
		if axis, err = tilemap.ParseStaggerAxis(m.StaggerAxis); err != nil {
			return tilemap.Geometry{}, fmt.Errorf("map %q: %w", m.Name, err)
		}
	}
	index := tilemap.StaggerOdd
	if m.StaggerIndex != "" {
		if index, err = tilemap.ParseStaggerIndex(m.StaggerIndex); err != nil {
			return tilemap.Geometry{}, fmt.Errorf("map %q: %w", m.Name, err)
		}
	}

	geom, err := tilemap.NewGeometry(orientation, m.TileWidth, m.TileHeight, m.Width, m.Height, axis, index, float64(m.HexSideLength))
	if err != nil {
		return tilemap.Geometry{}, fmt.Errorf("map %q: %w", m.Name, err)
	}
	return geom, nil
}

// Resolver builds a tileset resolver from the config entry.
func (m MapConfig) Resolver() (*tilemap.RangeResolver, error) {
	ranges := make([]tilemap.TilesetRange, len(m.Tilesets))
	for i, ts := range m.Tilesets {
		ranges[i] = tilemap.TilesetRange{
			Name:      ts.Name,
			FirstID:   ts.FirstID,
			TileCount: ts.TileCount,
			OffsetX:   ts.OffsetX,
			OffsetY:   ts.OffsetY,
		}
	}
	resolver, err := tilemap.NewRangeResolver(ranges)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", m.Name, err)
	}
	return resolver, nil
}

// MapByName returns the named map config.
func (c Config) MapByName(name string) (MapConfig, error) {
	for _, m := range c.Maps {
		if m.Name == name {
			return m, nil
		}
	}
	return MapConfig{}, fmt.Errorf("map %q not found in config", name)
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "tilegrid",
			Password: "tilegrid",
			DBName:   "tilegrid",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file. If the file doesn't exist,
// returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

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
