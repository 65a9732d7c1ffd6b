package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/tui"
)

// ErrNotInteractive is returned when explore is run without a terminal.
var ErrNotInteractive = errors.New("explore requires an interactive terminal")

// NewExploreCmd creates the explore command, which launches the interactive
// parameter explorer.
func NewExploreCmd() *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Edit farm parameters interactively and watch the results change",
		Example: `  # Explore the default farm
  herdcarbon explore

  # Start from a farm file and save the edited parameters on exit
  herdcarbon explore --params farm.yaml --save farm-edited.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotInteractive
			}

			params, err := loadParameters(cmd, farm.DefaultParameters())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			m := tui.NewExplorerModel(ctx, newCalculator(nil), params, nil)
			p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
			if _, err = p.Run(); err != nil {
				return fmt.Errorf("failed to run interactive TUI: %w", err)
			}

			if savePath == "" || !m.Modified() {
				return nil
			}
			if err = saveParameters(savePath, m.Params()); err != nil {
				return err
			}
			cmd.Printf("Parameters saved to %s\n", savePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "write the edited parameters to this file (JSON or YAML) on exit")

	return cmd
}

// saveParameters writes p as JSON or YAML, chosen by the file extension.
func saveParameters(path string, p farm.Parameters) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(p, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(p)
	default:
		return fmt.Errorf("%w: %s", farm.ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding parameters: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing parameters to %s: %w", path, err)
	}
	return nil
}
