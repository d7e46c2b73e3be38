package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mapforge/tilegrid/internal/config"
	"github.com/mapforge/tilegrid/internal/store"
	"github.com/mapforge/tilegrid/internal/tilemap"
	"github.com/mapforge/tilegrid/internal/tmx"
)

const defaultConfig = "config/tilegrid.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	app := &cli.App{
		Name:  "tilegrid",
		Usage: "tile map grid and persistence utility",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"TILEGRID_CONFIG"},
				Value:   defaultConfig,
				Usage:   "path to config file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			inspectCommand(),
			importCommand(),
			exportCommand(),
			convertCommand(),
			listCommand(),
			migrateCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and installs the default logger at
// the configured level (--verbose forces debug).
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	return cfg, nil
}

// buildLayer reads a TMX <data> payload from a file and runs it through
// the construction pipeline for the named map.
func buildLayer(ctx context.Context, cfg config.Config, mapName, layerName, path, encoding, compression string) (*tilemap.Layer, tilemap.BuildReport, error) {
	mc, err := cfg.MapByName(mapName)
	if err != nil {
		return nil, tilemap.BuildReport{}, err
	}
	geom, err := mc.Geometry()
	if err != nil {
		return nil, tilemap.BuildReport{}, err
	}
	resolver, err := mc.Resolver()
	if err != nil {
		return nil, tilemap.BuildReport{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, tilemap.BuildReport{}, fmt.Errorf("reading layer data: %w", err)
	}
	data, err := tmx.DecodeLayerData(string(content), encoding, compression)
	if err != nil {
		return nil, tilemap.BuildReport{}, err
	}

	layer := tilemap.NewLayer(layerName, geom, resolver)
	report, err := layer.SetLayerDataParallel(ctx, data, 0)
	if err != nil {
		return nil, tilemap.BuildReport{}, fmt.Errorf("building layer %q: %w", layerName, err)
	}
	return layer, report, nil
}

// layerNameFor derives a layer name from the data file when more than
// one file is imported at once.
func layerNameFor(c *cli.Context, i int) string {
	if c.NArg() == 1 {
		return c.String("layer")
	}
	base := filepath.Base(c.Args().Get(i))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "map",
			Aliases:  []string{"m"},
			Usage:    "map name from the config",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "layer",
			Value: "ground",
			Usage: "layer name",
		},
		&cli.StringFlag{
			Name:  "encoding",
			Value: tmx.EncodingCSV,
			Usage: "layer data encoding (csv or base64)",
		},
		&cli.StringFlag{
			Name:  "compression",
			Value: tmx.CompressionNone,
			Usage: "base64 payload compression (gzip or zlib)",
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Build a layer from a data file and report the outcome",
		ArgsUsage: "FILE",
		Flags:     dataFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			layer, report, err := buildLayer(c.Context, cfg, c.String("map"), c.String("layer"),
				c.Args().First(), c.String("encoding"), c.String("compression"))
			if err != nil {
				return err
			}

			geom := layer.Geometry()
			fmt.Printf("map:        %s (%s, %dx%d tiles of %dx%d px)\n",
				c.String("map"), geom.Orientation, geom.Width, geom.Height, geom.TileWidth, geom.TileHeight)
			fmt.Printf("layer:      %s\n", layer.Name())
			fmt.Printf("built:      %d\n", report.Built)
			fmt.Printf("empty:      %d\n", report.Skipped)
			if n := report.UnresolvedCount(); n > 0 {
				fmt.Printf("unresolved: %d distinct ids %v\n", n, report.Unresolved.IDs())
			}
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Build layers from data files and persist the map",
		ArgsUsage: "FILE...",
		Flags:     dataFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			mapName := c.String("map")

			// Layers are independent; build one per file concurrently.
			layerRecs := make([]store.LayerRecord, c.NArg())
			g, gctx := errgroup.WithContext(c.Context)
			for i := 0; i < c.NArg(); i++ {
				g.Go(func() error {
					layer, report, err := buildLayer(gctx, cfg, mapName, layerNameFor(c, i),
						c.Args().Get(i), c.String("encoding"), c.String("compression"))
					if err != nil {
						return err
					}
					slog.Info("layer built", "map", mapName, "layer", layer.Name(),
						"built", report.Built, "unresolved", report.UnresolvedCount())
					layerRecs[i], err = store.SnapshotLayer(layer)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			mc, err := cfg.MapByName(mapName)
			if err != nil {
				return err
			}
			rec := store.MapRecord{
				Name:          mc.Name,
				Orientation:   mc.Orientation,
				TileWidth:     mc.TileWidth,
				TileHeight:    mc.TileHeight,
				Width:         mc.Width,
				Height:        mc.Height,
				StaggerAxis:   mc.StaggerAxis,
				StaggerIndex:  mc.StaggerIndex,
				HexSideLength: mc.HexSideLength,
				Infinite:      mc.Infinite,
				Layers:        layerRecs,
			}

			st, err := store.New(c.Context, cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			repo := store.NewMapRepository(st.Pool())
			if err := repo.SaveMap(c.Context, rec); err != nil {
				return err
			}
			slog.Info("map saved", "map", mapName, "layers", len(rec.Layers))
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Load a stored map and print its layers as base64 data",
		ArgsUsage: "MAP",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			st, err := store.New(c.Context, cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := store.NewMapRepository(st.Pool()).LoadMap(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("map %q not found", c.Args().First())
			}

			for _, layer := range rec.Layers {
				if layer.Infinite {
					fmt.Printf("layer %s (%d chunks):\n", layer.Name, len(layer.Chunks))
					for _, ch := range layer.Chunks {
						fmt.Printf("  chunk %d,%d %dx%d: %s\n",
							ch.OffsetX, ch.OffsetY, ch.Width, ch.Height, tmx.EncodeLayerData(ch.Data))
					}
					continue
				}
				fmt.Printf("layer %s: %s\n", layer.Name, tmx.EncodeLayerData(layer.Data))
			}
			return nil
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert between tile coordinates and render positions",
		ArgsUsage: "X Y",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "map",
				Aliases:  []string{"m"},
				Usage:    "map name from the config",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "reverse",
				Usage: "treat X Y as a render position and find the tile",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			mc, err := cfg.MapByName(c.String("map"))
			if err != nil {
				return err
			}
			geom, err := mc.Geometry()
			if err != nil {
				return err
			}

			if c.Bool("reverse") {
				x, err := strconv.ParseFloat(c.Args().Get(0), 64)
				if err != nil {
					return fmt.Errorf("parsing x: %w", err)
				}
				y, err := strconv.ParseFloat(c.Args().Get(1), 64)
				if err != nil {
					return fmt.Errorf("parsing y: %w", err)
				}
				coord := geom.CoordinateForPoint(tilemap.ScreenPoint{X: x, Y: y})
				fmt.Printf("tile %s\n", coord)
				return nil
			}

			x, err := strconv.ParseInt(c.Args().Get(0), 10, 32)
			if err != nil {
				return fmt.Errorf("parsing x: %w", err)
			}
			y, err := strconv.ParseInt(c.Args().Get(1), 10, 32)
			if err != nil {
				return fmt.Errorf("parsing y: %w", err)
			}
			p := geom.PointForCoordinate(tilemap.TileCoordinate{X: int32(x), Y: int32(y)})
			fmt.Printf("position (%g,%g)\n", p.X, p.Y)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored maps",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			st, err := store.New(c.Context, cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := store.NewMapRepository(st.Pool()).ListMaps(c.Context)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database schema migrations",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := store.RunMigrations(c.Context, cfg.Database.DSN()); err != nil {
				return err
			}
			slog.Info("database migrations applied")
			return nil
		},
	}
}
