package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gatehouse-dev/gatehouse/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sign-in portal HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		s := server.New()
		s.RegisterRoutes()
		s.Start(s.Cfg.GetListenAddr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
