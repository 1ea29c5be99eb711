package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/photoalbum/internal/config"
	"github.com/zjrosen/photoalbum/internal/flags"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List the compatibility flags and their state",
	Long: `List the compatibility flags and their state.

Flags change how older command files are interpreted. Enable one for a
single run with an environment variable, for example
PHOTOALBUM_FLAGS_SILENT_MISSING_SHAPE=true, or persist it with
"photoalbum flags set".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listFlags(flags.New(cfg.Flags), cmd.OutOrStdout())
	},
}

var flagsSetCmd = &cobra.Command{
	Use:   "set NAME on|off",
	Short: "Persist a compatibility flag in the configuration file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = localConfigPath
		}
		return setFlag(path, args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	flagsCmd.AddCommand(flagsSetCmd)
	rootCmd.AddCommand(flagsCmd)
}

func listFlags(reg *flags.Registry, stdout io.Writer) error {
	r := lipgloss.NewRenderer(stdout)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("FLAG", "ENABLED", "DESCRIPTION").
		StyleFunc(func(_, _ int) lipgloss.Style { return cell })
	for _, name := range flags.Known() {
		desc, _ := flags.Describe(name)
		t.Row(name, strconv.FormatBool(reg.Enabled(name)), desc)
	}
	_, err := fmt.Fprintln(stdout, t.Render())
	return err
}

func setFlag(path, name, value string, stdout io.Writer) error {
	if _, ok := flags.Describe(name); !ok {
		return fmt.Errorf("unknown flag %q (known: %s)", name, strings.Join(flags.Known(), ", "))
	}
	enabled, err := parseSwitch(value)
	if err != nil {
		return err
	}
	if err := config.SaveFlag(path, name, enabled); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s = %t in %s\n", name, enabled, path)
	return err
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid value %q (expected on or off)", s)
	}
	return b, nil
}
