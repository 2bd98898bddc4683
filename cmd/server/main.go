// @title        Polychat API
// @version      1.0
// @description  Multi-vendor LLM chat relay with conversations, image generation and preset moderation.
// @BasePath     /api
package main

import (
	"os"

	"github.com/spf13/cobra"

	"polychat/backend/internal/app"
)

var (
	rootCmd = &cobra.Command{
		Use:   "polychat",
		Short: "Chat relay for OpenAI and Gemini models",
		Run: func(_ *cobra.Command, _ []string) {
			os.Exit(app.Run())
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Run: func(_ *cobra.Command, _ []string) {
			os.Exit(app.Run())
		},
	}

	migrateCmd = &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		Run: func(_ *cobra.Command, args []string) {
			os.Exit(app.Migrate(args[0] == "up"))
		},
	}
)

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
