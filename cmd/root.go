// Package cmd implements the envreg command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/envreg/internal/config"
	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/envs"
	"github.com/zjrosen/envreg/internal/envservice"
	"github.com/zjrosen/envreg/internal/log"
	"github.com/zjrosen/envreg/internal/resolver"
	"github.com/zjrosen/envreg/internal/tracing"
)

const localConfigPath = ".envreg/config.yaml"

var version = "dev"

// app holds state shared by the subcommands of one root command.
type app struct {
	v         *viper.Viper
	cfgFile   string
	manifests []string
	cfg       config.Config

	svc     *envservice.Service
	closers []func()
}

// NewRootCmd builds the envreg command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "envreg",
		Short: "Versioned environment registry",
		Long: `envreg registers environments under versioned identifiers such as
"Snake-v1" and builds them on demand.

Built-in environments are always registered. Additional ones are loaded
from manifest files named in the config or with --manifest.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: .envreg/config.yaml or ~/.config/envreg/config.yaml)")
	flags.StringArrayVarP(&a.manifests, "manifest", "m", nil,
		"manifest file to register after the built-ins (repeatable)")
	flags.Bool("debug", false, "enable debug logging")
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))

	root.AddCommand(
		newListCmd(a),
		newSpecCmd(a),
		newParseCmd(),
		newMakeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// configPath is the file config commands write to.
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return localConfigPath
}

func (a *app) loadConfig() error {
	v := a.v
	defaults := config.Defaults()
	v.SetDefault("manifests", defaults.Manifests)
	v.SetDefault("log.enabled", defaults.Log.Enabled)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("resolver.cache_ttl", defaults.Resolver.CacheTTL)
	v.SetDefault("resolver.cache_cleanup", defaults.Resolver.CacheCleanup)
	v.SetDefault("resolver.disable_cache", defaults.Resolver.DisableCache)
	v.SetDefault("resolver.sliding_ttl", defaults.Resolver.SlidingTTL)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	v.SetEnvPrefix("ENVREG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config lookup order:
	// 1. --config
	// 2. .envreg/config.yaml (current directory)
	// 3. ~/.config/envreg/config.yaml (user config)
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else if _, err := os.Stat(localConfigPath); err == nil {
		v.SetConfigFile(localConfigPath)
	} else if dir := config.Dir(); dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	a.cfg.Manifests = append(a.cfg.Manifests, a.manifests...)

	if err := config.Validate(a.cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (a *app) initLogging() error {
	debug := a.v.GetBool("debug")
	if !debug && !a.cfg.Log.Enabled {
		return nil
	}

	path := a.cfg.Log.Path
	if path == "" {
		path = config.DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() {
		log.Reset()
		cleanup()
	})

	level, _ := log.ParseLevel(a.cfg.Log.Level)
	if debug {
		level = log.LevelDebug
	}
	log.SetMinLevel(level)
	log.Debug(log.CatConfig, "config loaded", "file", a.v.ConfigFileUsed(), "manifests", len(a.cfg.Manifests))
	return nil
}

func (a *app) initTracing(cmd *cobra.Command) (*tracing.Provider, error) {
	tc := a.cfg.Tracing
	filePath := tc.FilePath
	if filePath == "" {
		filePath = config.DefaultTracesFilePath()
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  tc.ServiceName,
	}, tracing.WithStdoutWriter(cmd.ErrOrStderr()))
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	})
	return provider, nil
}

// setup loads config and builds the service. The built registry is
// installed as the process-wide default until close runs.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	if err := a.initLogging(); err != nil {
		return err
	}
	provider, err := a.initTracing(cmd)
	if err != nil {
		return err
	}

	if err := envs.AddToDefaultCatalog(); err != nil {
		return err
	}
	cached := resolver.NewCached(registry.DefaultCatalog(), resolver.Options{
		TTL:             a.cfg.Resolver.CacheTTL,
		CleanupInterval: a.cfg.Resolver.CacheCleanup,
		Disabled:        a.cfg.Resolver.DisableCache,
		Sliding:         a.cfg.Resolver.SlidingTTL,
	})

	reg := registry.NewRegistry(cached)
	a.closers = append(a.closers, registry.SetDefault(reg))

	if err := envs.RegisterBuiltins(reg); err != nil {
		return fmt.Errorf("registering built-ins: %w", err)
	}

	a.svc = envservice.New(reg, provider.Tracer())
	if err := a.svc.LoadManifests(cmd.Context(), a.cfg.Manifests); err != nil {
		return err
	}
	log.Debug(log.CatCLI, "registry ready", "environments", reg.Len())
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// withService wraps a RunE so it runs against a ready service.
func (a *app) withService(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		if err := a.setup(cmd); err != nil {
			return err
		}
		log.Debug(log.CatCLI, "running command", "command", cmd.Name(), "args", strings.Join(args, " "))
		return run(cmd, args)
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
