package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	appdist "audio-converter/application/distribution"
	"audio-converter/domain/distribution"
	"audio-converter/infrastructure/drive"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <audio-file...>",
	Short: "Upload converted audio to Google Drive with public sharing",
	Long: `Upload audio files to Google Drive and set public sharing.

Files are uploaded to the configured google.folder_id and made readable by
anyone with the link. A file with the same name in that folder is replaced.

Example:
  audio-converter upload AudioConverted/talk.mp3
  audio-converter upload AudioConverted/*.ogg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if cfg.Google.FolderID == "" {
		return fmt.Errorf("google.folder_id is not configured. Run 'audio-converter setup' first")
	}

	// Create drive client with OAuth
	ctx := cmd.Context()
	client, err := drive.NewClientWithOAuth(ctx, cfg.Google.CredentialsFile, cfg.Google.TokenFile, DefaultOutput)
	if err != nil {
		return fmt.Errorf("failed to create Google Drive client: %w", err)
	}

	return RunUploadWithDependencies(ctx, client, cfg.Google.FolderID, args, DefaultOutput)
}

// RunUploadWithDependencies runs the upload command with injected dependencies (for testing)
func RunUploadWithDependencies(
	ctx context.Context,
	driveClient distribution.DriveClient,
	folderID string,
	paths []string,
	output io.Writer,
) error {
	service := appdist.NewUploadService(driveClient, folderID, output)

	failed := 0
	for _, path := range paths {
		fmt.Fprintf(output, "Uploading %s...\n", filepath.Base(path))
		result, err := service.UploadAudio(ctx, path)
		if err != nil {
			fmt.Fprintf(output, "  Failed: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(output, "  File ID: %s\n", result.FileID)
		fmt.Fprintf(output, "  Size: %.2f MB\n", float64(result.Size)/1024/1024)
		fmt.Fprintf(output, "  Shareable URL: %s\n", result.ShareableURL)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(paths))
	}
	fmt.Fprintf(output, "Upload complete!\n")
	return nil
}
