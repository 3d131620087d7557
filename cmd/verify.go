package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pv-udpv/opendirect21-adcom/internal/config"
	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
	"github.com/pv-udpv/opendirect21-adcom/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-parse previously generated source and check it against the specs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		for _, sp := range cfg.Specs {
			content, err := os.ReadFile(sp.Path)
			if err != nil {
				return fmt.Errorf("read spec %s: %w", sp.Path, err)
			}
			doc := spec.Parse(string(content))

			base := filepath.Join(cfg.OutputDir, sp.Package)
			models, err := os.ReadFile(filepath.Join(base, "models.go"))
			if err != nil {
				return fmt.Errorf("read generated models for %s: %w", sp.Name, err)
			}
			routes, err := os.ReadFile(filepath.Join(base, "routes.go"))
			if err != nil {
				return fmt.Errorf("read generated routes for %s: %w", sp.Name, err)
			}

			res, err := verify.Verify(doc, models, routes)
			if err != nil {
				return fmt.Errorf("%s: %w", sp.Name, err)
			}
			log.WithFields(map[string]any{
				"spec":           sp.Name,
				"models":         res.ModelCount,
				"route_groups":   res.RouteGroups,
				"empty_sections": res.EmptySections,
			}).Info("verification passed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
