package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hasbyte1/go-laravel-hashing/hashing"
)

// ErrNoSecret is returned when a command needs a secret and neither the
// arguments nor stdin provide one.
var ErrNoSecret = errors.New("cli: no secret given")

func newMakeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make [secret]",
		Short: "Hash a secret with the selected driver",
		Long:  "Hash a secret with the selected driver. Without an argument the first line of stdin is hashed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd, args, 0)
			if err != nil {
				return err
			}
			h, err := a.driver()
			if err != nil {
				return err
			}
			digest, err := h.Make(secret, costOptions(cmd)...)
			if err != nil {
				return err
			}
			a.logger.Debug("digest created", zap.String("algorithm", string(h.Algorithm())))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), digest)
			return err
		},
	}
	addCostFlags(cmd)
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <digest> [secret]",
		Short: "Verify a secret against a digest",
		Long:  "Verify a secret against a digest and print true or false. Without a secret argument the first line of stdin is used.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd, args, 1)
			if err != nil {
				return err
			}
			h, err := a.driver()
			if err != nil {
				return err
			}
			ok, err := h.Check(secret, args[0], costOptions(cmd)...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
			return err
		},
	}
	addCostFlags(cmd)
	return cmd
}

func newNeedsRehashCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "needs-rehash <digest>",
		Short: "Report whether a digest should be regenerated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.driver()
			if err != nil {
				return err
			}
			needs, err := h.NeedsRehash(args[0], costOptions(cmd)...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), needs)
			return err
		},
	}
	addCostFlags(cmd)
	return cmd
}

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <digest>",
		Short: "Print the algorithm and parameters of a digest as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.driver()
			if err != nil {
				return err
			}
			info, err := h.Info(args[0])
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		},
	}
}

func newDriversCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the available drivers; the default is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := a.registry.DefaultDriver()
			for _, name := range a.registry.Supported() {
				line := string(name)
				if name == def {
					line += " *"
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) driver() (hashing.Hasher, error) {
	return a.registry.Driver("")
}

// readSecret returns args[idx] when present, else the first line of stdin.
func readSecret(cmd *cobra.Command, args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read secret")
	}
	return "", ErrNoSecret
}

const (
	flagRounds  = "rounds"
	flagMemory  = "memory"
	flagTime    = "time"
	flagThreads = "threads"
)

func addCostFlags(cmd *cobra.Command) {
	cmd.Flags().Int(flagRounds, 0, "bcrypt rounds for this call")
	cmd.Flags().Int(flagMemory, 0, "argon2 memory cost in KiB for this call")
	cmd.Flags().Int(flagTime, 0, "argon2 iterations for this call")
	cmd.Flags().Int(flagThreads, 0, "argon2 parallelism for this call")
}

// costOptions turns the cost flags set on the command line into per-call
// options. Unset flags yield no option.
func costOptions(cmd *cobra.Command) []hashing.Option {
	var opts []hashing.Option
	for flag, with := range map[string]func(int) hashing.Option{
		flagRounds:  hashing.WithRounds,
		flagMemory:  hashing.WithMemory,
		flagTime:    hashing.WithTime,
		flagThreads: hashing.WithThreads,
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		if n, err := cmd.Flags().GetInt(flag); err == nil {
			opts = append(opts, with(n))
		}
	}
	return opts
}
