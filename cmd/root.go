package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/photoalbum/internal/config"
	"github.com/zjrosen/photoalbum/internal/log"
)

var (
	version     = "dev"
	cfgFile     string
	cfg         config.Config
	debugFlag   bool
	verboseFlag bool
)

// Default config locations, in lookup order after --config.
const (
	localConfigPath = ".photoalbum/config.yaml"
	userConfigDir   = ".config/photoalbum"
)

var rootCmd = &cobra.Command{
	Use:   "photoalbum",
	Short: "Interpret shape command files into a photo album of snapshots",
	Long: `photoalbum reads a command file that creates, moves, recolors, resizes and
removes named rectangles and ovals, and captures snapshots of the scene as it
goes. The snapshots can be listed, exported, diffed, rendered to an HTML page
or served over HTTP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cleanup, err := setupLogging(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

var logCleanup func()

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .photoalbum/config.yaml, then ~/.config/photoalbum/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by PHOTOALBUM_DEBUG)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false,
		"echo log entries to stderr")
}

func initConfig() {
	setViperDefaults(config.Defaults())

	viper.SetEnvPrefix("PHOTOALBUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .photoalbum/config.yaml (current directory)
		// 2. ~/.config/photoalbum/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, userConfigDir))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "photoalbum: reading config: %v\n", err)
		}
	}

	cfg = config.Defaults()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "photoalbum: decoding config: %v\n", err)
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "file" && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

func setViperDefaults(d config.Config) {
	viper.SetDefault("view.width", d.View.Width)
	viper.SetDefault("view.height", d.View.Height)
	viper.SetDefault("snapshot.id_format", d.Snapshot.IDFormat)
	viper.SetDefault("snapshot.timestamp_layout", d.Snapshot.TimestampLayout)
	viper.SetDefault("serve.addr", d.Serve.Addr)
	viper.SetDefault("watch.debounce", d.Watch.Debounce)
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("log.file", d.Log.File)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("tracing.enabled", d.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", d.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	for name, enabled := range d.Flags {
		viper.SetDefault("flags."+name, enabled)
	}
}

// setupLogging installs the global logger when --debug, PHOTOALBUM_DEBUG or
// --verbose asks for one. With --verbose every entry is echoed to stderr.
func setupLogging(stderr io.Writer) (func(), error) {
	debug := debugFlag || os.Getenv("PHOTOALBUM_DEBUG") != ""
	if !debug && !verboseFlag {
		return func() {}, nil
	}

	var cleanup func()
	if debug {
		logPath := os.Getenv("PHOTOALBUM_LOG")
		if logPath == "" {
			logPath = cfg.Log.File
		}
		var err error
		cleanup, err = log.Init(logPath)
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
	} else {
		cleanup = log.InitWithWriter(io.Discard)
	}

	if level, ok := log.ParseLevel(cfg.Log.Level); ok {
		log.SetMinLevel(level)
	}

	if verboseFlag {
		log.Tee(stderr)
	}
	return cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
