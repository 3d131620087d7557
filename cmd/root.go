package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "specgen",
	Short: "specgen: OpenDirect/AdCom specification parser and code generator",
	Long: `specgen parses IAB advertising specification markdown (OpenDirect 2.1,
AdCom 1.0) into object definitions, generates Go data models and CRUD route
source from them, and verifies the emitted output. The serve command runs the
same CRUD semantics directly from the parsed definitions over an in-memory
store.`,
}

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "pipeline.hcl", "Path to the pipeline HCL config")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
