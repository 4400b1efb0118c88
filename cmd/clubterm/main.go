// Command clubterm serves the ConnectClub "My Network" screen in the
// terminal, locally or over SSH.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/connectclub/clubterm/pkg/config"
	logr "github.com/connectclub/clubterm/pkg/log"
	"github.com/connectclub/clubterm/pkg/markdown"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

type logFileKey struct{}

func version() string {
	v := Version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			v = info.Main.Version
		} else {
			v = "unknown (built from source)"
		}
	}
	if len(CommitSHA) >= 7 {
		v += " (" + CommitSHA[0:7] + ")"
	}
	return v
}

func rootCommand() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:          "clubterm",
		Short:        "The ConnectClub network screen for the terminal",
		Long:         "clubterm shows your ConnectClub network in a tabbed terminal UI, locally or over SSH.",
		Version:      version(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initContext(cmd, configPath)
		},
		PersistentPostRunE: closeLogFile,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.AddCommand(
		serveCommand(),
		browseCommand(),
		configCommand(),
		manCommand(rootCmd),
	)
	return rootCmd
}

// initContext parses the config and attaches it to the command context
// along with the logger and the markdown renderer.
func initContext(cmd *cobra.Command, configPath string) error {
	ctx := cmd.Context()
	cfg := config.DefaultConfig()
	if configPath != "" {
		if err := config.ParseConfig(cfg, configPath); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	} else if err := cfg.Parse(); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	log.SetDefault(logger)

	md, err := markdown.NewRenderer(cfg.Cache.Size)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, logger)
	ctx = markdown.WithContext(ctx, md)
	if f != nil {
		ctx = context.WithValue(ctx, logFileKey{}, f)
	}
	cmd.SetContext(ctx)
	return nil
}

func closeLogFile(cmd *cobra.Command, _ []string) error {
	if f, ok := cmd.Context().Value(logFileKey{}).(*os.File); ok {
		return f.Close()
	}
	return nil
}

func main() {
	// Set the max number of processes to the number of CPUs
	// This is useful when running clubterm in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
