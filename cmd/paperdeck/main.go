package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdeck/paperdeck/internal/catalog"
	"github.com/paperdeck/paperdeck/internal/config"
	"github.com/paperdeck/paperdeck/internal/reader"
	"github.com/paperdeck/paperdeck/internal/server"
	"github.com/paperdeck/paperdeck/internal/stats"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "paperdeck",
	Short:   "Browse conference proceedings",
	Long:    "Paperdeck serves a filterable catalog and figure-paired reader for a conference proceedings dataset.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("paperdeck", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/paperdeck/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your dataset and asset tree.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := catalog.Load(cmd.Context(), cfg.Dataset)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}

		papers := col.Papers()
		fmt.Printf("Dataset: %s\n", cfg.Dataset)
		fmt.Printf("Papers: %d\n", col.Len())

		fmt.Println("\nBy session:")
		for _, b := range stats.SessionHistogram(papers) {
			fmt.Printf("  %s: %d\n", b.Label, b.Count)
		}

		fmt.Println("\nBy organization type:")
		for _, seg := range stats.OrgTypeDonut(papers).Segments {
			fmt.Printf("  %s: %d\n", seg.Label, seg.Count)
		}

		fmt.Println("\nBy process node:")
		for _, b := range stats.ProcessHistogram(papers) {
			fmt.Printf("  %s: %d\n", b.Label, b.Count)
		}

		mode := "public"
		if cfg.Private {
			mode = "private"
		}
		fmt.Printf("\nMode: %s\n", mode)
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		col, err := catalog.Load(ctx, cfg.Dataset)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		log.Printf("Loaded %d papers from %s", col.Len(), cfg.Dataset)

		imageDir := reader.DetectImageDir(ctx,
			cfg.Assets.Base, cfg.Assets.ImageDir, cfg.Assets.FallbackDir, cfg.Assets.ProbeSample)
		log.Printf("Using image directory %q", imageDir)

		source := reader.NewSource(cfg.Assets.Base, cfg.Private)

		// Local asset trees are served by us under /assets/; remote trees are
		// linked directly.
		assetDir := cfg.Assets.Base
		prefix := "/assets"
		if remoteBase(cfg.Assets.Base) {
			assetDir = ""
			prefix = cfg.Assets.Base
		}
		resolver := reader.Resolver{Prefix: prefix, Dir: imageDir}

		srv, err := server.New(col, source, resolver, assetDir, cfg.Private)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return srv.Serve(port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

func remoteBase(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}
