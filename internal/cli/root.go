// Package cli implements the hashctl command tree.
package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hasbyte1/go-laravel-hashing/config"
	"github.com/hasbyte1/go-laravel-hashing/hashing"
)

const (
	flagConfig  = "config"
	flagDriver  = "driver"
	flagVerbose = "verbose"
)

// app is the state shared by every subcommand, built once the persistent
// flags have been parsed.
type app struct {
	v        *viper.Viper
	logger   *zap.Logger
	registry *hashing.Registry
}

// NewRootCommand returns the hashctl root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hashctl",
		Short: "Hash, verify and inspect password digests",
		Long: `hashctl exposes the hashing registry on the command line.

Configuration is read from the file given with --config and from HASHING_*
environment variables, e.g. HASHING_DRIVER=argon2id or HASHING_BCRYPT_ROUNDS=12.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringP(flagConfig, "c", "", "configuration file (yaml, json or toml)")
	root.PersistentFlags().StringP(flagDriver, "d", "", "driver to use instead of hashing.driver")
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "log at debug level")

	root.AddCommand(
		newMakeCommand(a),
		newCheckCommand(a),
		newNeedsRehashCommand(a),
		newInfoCommand(a),
		newDriversCommand(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, err := flags.GetString(flagConfig)
	if err != nil {
		return err
	}
	v, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := v.BindPFlag(hashing.ConfigKeyDriver, flags.Lookup(flagDriver)); err != nil {
		return errors.Wrap(err, "bind --driver")
	}

	verbose, err := flags.GetBool(flagVerbose)
	if err != nil {
		return err
	}
	logger, err := configureLogging(verbose)
	if err != nil {
		return err
	}

	a.v = v
	a.logger = logger
	a.registry = hashing.NewRegistry(v, hashing.WithLogger(logger))
	return nil
}

func configureLogging(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
