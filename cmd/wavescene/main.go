package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"wavescene/internal/assets"
	"wavescene/internal/config"
	"wavescene/internal/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		utils.Error("%v", err)
		utils.Sync()
		os.Exit(1)
	}
	utils.Sync()
}

func run(args []string) error {
	flags := flag.NewFlagSet("wavescene", flag.ContinueOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	assetsDir := flags.String("assets", "", "Directory holding the shader assets")
	pkgPath := flags.String("pkg", "", "Read shader assets from a .pkg archive instead of a directory")
	width := flags.Int("width", 0, "Window width")
	height := flags.Int("height", 0, "Window height")
	fps := flags.Int("fps", 0, "Target frames per second")
	debugFlag := flags.Bool("debug", false, "Enable verbose debug logging")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error, silent")
	wallpaper := flags.Bool("wallpaper", false, "Run fullscreen below the desktop icons (X11)")
	raylibInfo := flags.Bool("raylib-info", false, "Show raylib INFO logs")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}
	if *pkgPath != "" {
		cfg.Assets.Package = *pkgPath
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *fps > 0 {
		cfg.Window.TargetFPS = *fps
	}
	if *wallpaper {
		cfg.Window.Wallpaper = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := utils.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	utils.SetLevel(level)
	if *debugFlag {
		utils.SetLevel(utils.LevelDebug)
	}
	utils.ShowRaylibInfo = *raylibInfo

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	utils.Info("--- Wave Scene Start ---")

	src, err := openSource(cfg.Assets)
	if err != nil {
		return fmt.Errorf("open assets: %w", err)
	}

	sources, err := assets.Load(src, assets.Paths{
		WaveVertex:        cfg.Assets.Shaders.WaveVertex,
		WaveFragment:      cfg.Assets.Shaders.WaveFragment,
		CompositeVertex:   cfg.Assets.Shaders.CompositeVertex,
		CompositeFragment: cfg.Assets.Shaders.CompositeFragment,
	})
	if err != nil {
		return err
	}

	window, err := NewWindow(cfg, sources)
	if err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}
	defer window.Close()

	utils.Info("Starting render loop...")
	window.Run()
	return nil
}

func openSource(cfg config.Assets) (assets.Source, error) {
	if cfg.Package != "" {
		pkg, err := assets.OpenPkg(cfg.Package)
		if err != nil {
			return nil, err
		}
		utils.Info("Assets: Using package %s (%s, %d entries)", cfg.Package, pkg.Version, len(pkg.Entries()))
		return pkg, nil
	}

	utils.Info("Assets: Using directory %s", cfg.Dir)
	return assets.DirSource{Root: cfg.Dir}, nil
}
