package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitprompt/internal/promptconfig"
	"gitprompt/internal/render"
	"gitprompt/internal/repo"
)

var configPath string

// flagError wraps a flag-parsing failure so main can tell it apart from a
// configuration or I/O failure and map it to exit code 2 per spec.
type flagError struct{ err error }

func (e *flagError) Error() string { return e.err.Error() }
func (e *flagError) Unwrap() error { return e.err }

// IsFlagError reports whether err originated from cobra's flag parser.
func IsFlagError(err error) bool {
	var fe *flagError
	return errors.As(err, &fe)
}

var rootCmd = &cobra.Command{
	Use:     "gitprompt",
	Version: version,
	Short:   "Render a git repository status line for a shell prompt",
	Long: `gitprompt inspects the git repository at the current directory and renders
a single-line status string driven by a configurable set of markers: branch
name, ahead/behind counts, working tree state, stash count and merge state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createDefaultConfig {
			path, err := promptconfig.DefaultPath()
			if err != nil {
				return err
			}
			if err := promptconfig.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		doc, err := promptconfig.Load(configPath)
		if err != nil {
			return err
		}

		h, _ := repo.Probe(".")
		fmt.Print(render.Render(doc, h))
		return nil
	},
}

var createDefaultConfig bool

func Execute() error {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &flagError{err: err}
	})
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (default: $XDG_CONFIG_HOME/pretty-git-prompt.yml or ~/.config/pretty-git-prompt.yml)")
	rootCmd.Flags().BoolVar(&createDefaultConfig, "create-default-config", false, "write the built-in default configuration to the default path and exit")
	rootCmd.AddCommand(doctorCmd)
}
