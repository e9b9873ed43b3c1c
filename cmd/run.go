package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kokeshes/wxk-check/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	return app.Run(app.Options{Deps: svc.deps()})
}
