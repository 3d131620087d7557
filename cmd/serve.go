package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pv-udpv/opendirect21-adcom/internal/config"
	"github.com/pv-udpv/opendirect21-adcom/internal/httpapi"
	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
	"github.com/pv-udpv/opendirect21-adcom/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve CRUD endpoints for every parsed specification object",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load() // optional .env, absence is fine

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		var sets []httpapi.SpecSet
		for _, sp := range cfg.Specs {
			content, err := os.ReadFile(sp.Path)
			if err != nil {
				return fmt.Errorf("read spec %s: %w", sp.Path, err)
			}
			doc := spec.Parse(string(content))
			if doc.Report.Len() > 0 {
				log.WithField("spec", sp.Name).Warn(doc.Report.Summary())
			}
			log.WithFields(map[string]any{
				"spec":    sp.Name,
				"prefix":  sp.RoutePrefix,
				"objects": len(doc.Objects),
			}).Info("mounting specification")
			sets = append(sets, httpapi.SpecSet{Name: sp.Name, Prefix: sp.RoutePrefix, Doc: doc})
		}

		addr := cfg.Listen
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}

		srv := httpapi.New(store.New(), log, sets...)
		log.WithField("addr", addr).Info("listening")
		return srv.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
