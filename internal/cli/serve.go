package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aezell/branchkit/internal/api"
	"github.com/aezell/branchkit/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the change classifier and content generator.

Endpoints:
  GET  /health        Health check
  POST /api/parse     Parse a unified diff into categorised files
  POST /api/classify  Recommend a commit type for a diff or file list
  POST /api/content   Generate a pull request title and body`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6142, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cfgPath != "")
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	listen := fmt.Sprintf("%s:%d", addr, port)
	return api.New(listen, log).ListenAndServe(cmd.Context())
}
