package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/connectclub/clubterm/pkg/ui"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/spf13/cobra"
)

func browseCommand() *cobra.Command {
	var tab string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the UI in this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			page := -1
			if tab != "" {
				for i, t := range cfg.Tabs {
					if t.ID == tab {
						page = i
					}
				}
				if page < 0 {
					return fmt.Errorf("unknown tab %q", tab)
				}
			}

			// Bubble Tea writes to stdout so the renderer has to detect
			// colors from there too.
			r := lipgloss.NewRenderer(os.Stdout)
			c := common.NewCommon(ctx, r, 0, 0)
			opts := []tea.ProgramOption{
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			}
			if cfg.UI.Mouse {
				opts = append(opts, tea.WithMouseCellMotion())
			}
			p := tea.NewProgram(ui.New(c, page), opts...)
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&tab, "tab", "t", "", "id of the tab to open")
	return cmd
}
