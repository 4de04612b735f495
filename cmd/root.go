package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "face-gallery",
	Short: "Event photo sharing with face matching",
	Long: `Face Gallery lets event organizers collect photos and lets guests
retrieve the photos containing their own face, protected by a shared
per-event password. Face descriptors are computed by an external
embedding service at upload time.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "URL of a running face-gallery server (for client commands)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
