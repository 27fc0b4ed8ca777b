package distribution

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"audio-converter/domain/conversion"
	"audio-converter/domain/distribution"
)

// UploadService handles file upload operations to Google Drive
type UploadService struct {
	driveClient distribution.DriveClient
	folderID    string
	output      io.Writer
}

// NewUploadService creates a new upload service
func NewUploadService(client distribution.DriveClient, folderID string, output io.Writer) *UploadService {
	if output == nil {
		output = io.Discard
	}
	return &UploadService{
		driveClient: client,
		folderID:    folderID,
		output:      output,
	}
}

// PublishedFile pairs a local audio file with its upload outcome
type PublishedFile struct {
	LocalPath string
	Result    *distribution.UploadResult
	Err       error
}

// PublishReport lists the outcome of every upload attempted for a run
type PublishReport struct {
	Files []PublishedFile
}

// Failed returns the number of uploads that did not succeed
func (r *PublishReport) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// URLFor returns the shareable URL of a published file, or ""
func (r *PublishReport) URLFor(localPath string) string {
	for _, f := range r.Files {
		if f.LocalPath == localPath && f.Result != nil {
			return f.Result.ShareableURL
		}
	}
	return ""
}

// UploadAudio uploads one audio file to Google Drive and sets public sharing
func (s *UploadService) UploadAudio(ctx context.Context, audioPath string) (*distribution.UploadResult, error) {
	format, err := conversion.ParseFormat(strings.TrimPrefix(filepath.Ext(audioPath), "."))
	if err != nil {
		return nil, fmt.Errorf("%s is not a converted audio file: %w", filepath.Base(audioPath), err)
	}
	return s.uploadAndShare(ctx, audioPath, distribution.MimeTypeFor(format))
}

// PublishRun uploads every completed output of a run.
// Failures are recorded per file; publishing continues with the next file.
func (s *UploadService) PublishRun(ctx context.Context, summary *conversion.RunSummary) *PublishReport {
	report := &PublishReport{}
	for _, r := range summary.Completed() {
		fmt.Fprintf(s.output, "   Uploading %s...\n", filepath.Base(r.OutputPath))
		result, err := s.UploadAudio(ctx, r.OutputPath)
		if err != nil {
			fmt.Fprintf(s.output, "   Upload failed: %v\n", err)
		} else {
			fmt.Fprintf(s.output, "   Shared: %s\n", result.ShareableURL)
		}
		report.Files = append(report.Files, PublishedFile{LocalPath: r.OutputPath, Result: result, Err: err})
	}
	return report
}

// uploadAndShare uploads a file and sets public sharing permissions
func (s *UploadService) uploadAndShare(ctx context.Context, filePath, mimeType string) (*distribution.UploadResult, error) {
	// Verify file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	fileName := filepath.Base(filePath)

	// Replace an earlier upload of the same file
	existing, err := s.driveClient.FindFileByName(ctx, s.folderID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing file: %w", err)
	}
	if existing != nil {
		fmt.Fprintf(s.output, "      Replacing existing %s (%.1f MB)\n", existing.Name, float64(existing.Size)/1024/1024)
		if err := s.driveClient.DeletePermanently(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete existing file %s: %w", existing.Name, err)
		}
	}

	req := distribution.UploadRequest{
		LocalPath: filePath,
		FileName:  fileName,
		FolderID:  s.folderID,
		MimeType:  mimeType,
	}

	result, err := s.driveClient.UploadAndShare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload and share %s: %w", fileName, err)
	}

	return result, nil
}
