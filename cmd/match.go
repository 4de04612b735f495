package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-gallery/internal/apiclient"
)

var matchCmd = &cobra.Command{
	Use:   "match <event-id> <face-image>",
	Short: "Find the photos of an event containing a face",
	Long: `Submit a face image to a running Face Gallery server and print the
URLs of all event photos containing that face.

Example:
  face-gallery match summer-party selfie.jpg --password secret`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().String("password", "", "Event password (required)")
	matchCmd.MarkFlagRequired("password")
}

func runMatch(cmd *cobra.Command, args []string) error {
	eventID := args[0]
	imagePath := args[1]
	password := mustGetString(cmd, "password")

	client := apiclient.New(serverURL)
	matches, err := client.Match(eventID, password, imagePath)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No matching photos found.")
		return nil
	}
	fmt.Printf("Found %d matching photo(s):\n", len(matches))
	for _, url := range matches {
		fmt.Println(serverURL + url)
	}
	return nil
}
