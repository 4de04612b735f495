package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-gallery/internal/apiclient"
)

var importCmd = &cobra.Command{
	Use:   "import <event-id> <folder-path> [folder-path...]",
	Short: "Upload a folder of photos to an event",
	Long: `Upload photos from one or more folders to an event on a running
Face Gallery server. Only png, jpg and jpeg files are uploaded.

Example:
  face-gallery import summer-party /path/to/photos --password secret
  face-gallery import summer-party /path/a /path/b --password secret --server http://gallery:8080`,
	Args: cobra.MinimumNArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("password", "", "Event password (required)")
	importCmd.MarkFlagRequired("password")
}

// isImageFile checks if a file has an accepted image extension
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// collectImageFiles lists image files in the given folders (non-recursive).
func collectImageFiles(folderPaths []string) ([]string, error) {
	var filePaths []string
	for _, folderPath := range folderPaths {
		info, err := os.Stat(folderPath)
		if err != nil {
			return nil, fmt.Errorf("cannot access folder %s: %w", folderPath, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", folderPath)
		}

		entries, err := os.ReadDir(folderPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read folder %s: %w", folderPath, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if isImageFile(entry.Name()) {
				filePaths = append(filePaths, filepath.Join(folderPath, entry.Name()))
			}
		}
	}
	return filePaths, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	eventID := args[0]
	folderPaths := args[1:]
	password := mustGetString(cmd, "password")

	filePaths, err := collectImageFiles(folderPaths)
	if err != nil {
		return err
	}
	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified folders.")
		return nil
	}

	fmt.Printf("Found %d image(s) to upload from %d folder(s)\n", len(filePaths), len(folderPaths))

	client := apiclient.New(serverURL)

	// Upload files one by one with progress bar
	uploadBar := progressbar.NewOptions(len(filePaths),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var uploadErrors []string
	for _, filePath := range filePaths {
		if err := client.Upload(eventID, password, filePath); err != nil {
			uploadErrors = append(uploadErrors, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
		}
		uploadBar.Add(1)
	}
	fmt.Println()

	for _, errMsg := range uploadErrors {
		fmt.Printf("Failed: %s\n", errMsg)
	}
	fmt.Printf("Uploaded %d of %d photos to event %s\n", len(filePaths)-len(uploadErrors), len(filePaths), eventID)
	return nil
}
