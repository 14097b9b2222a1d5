package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/justestif/go-story-soundtracker/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the matching pipeline as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		server := web.NewServer(web.ServerConfig{Addr: viper.GetString("addr")}, engine)
		return server.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", web.DefaultAddr, "listen address")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}
