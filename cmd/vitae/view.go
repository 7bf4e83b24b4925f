package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/vitae/pkg/config"
	"github.com/vanderheijden86/vitae/pkg/loader"
	"github.com/vanderheijden86/vitae/pkg/ui"
)

func viewCmd() *cobra.Command {
	var noLabels bool
	var tickRate int

	cmd := &cobra.Command{
		Use:   "view [cv.yaml]",
		Short: "Open the interactive terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			path := cfg.CVPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no cv file: pass a path or set cv_path in the config")
			}

			if noLabels {
				cfg.Viewer.ShowLabels = false
			}
			if tickRate > 0 {
				cfg.Viewer.TickRateMs = tickRate
			}

			root, err := loader.LoadFile(path)
			if err != nil {
				return fmt.Errorf("loading cv: %w", err)
			}
			nodes, links, err := loader.Flatten(root)
			if err != nil {
				return fmt.Errorf("flattening cv: %w", err)
			}

			m, err := ui.NewModel(nodes, links, cfg.Viewer)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "Hide node labels on the canvas")
	cmd.Flags().IntVar(&tickRate, "tick-rate", 0, "Simulation frame interval in milliseconds")
	return cmd
}
