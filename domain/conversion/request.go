package conversion

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultOutputFolderName is the folder created under the working directory
// when no output folder is chosen
const DefaultOutputFolderName = "AudioConverted"

// DefaultOutputFolder returns <cwd>/AudioConverted
func DefaultOutputFolder(cwd string) string {
	return filepath.Join(cwd, DefaultOutputFolderName)
}

// ConversionRequest is one item to convert with the run's shared settings
type ConversionRequest struct {
	Item         QueueItem
	Format       Format
	OutputFolder string
}

// NewConversionRequest creates a request with validation
func NewConversionRequest(item QueueItem, format Format, outputFolder string) (*ConversionRequest, error) {
	if item.SourcePath == "" {
		return nil, fmt.Errorf("source video path is required")
	}
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if outputFolder == "" {
		return nil, fmt.Errorf("output folder is required")
	}

	return &ConversionRequest{
		Item:         item,
		Format:       format,
		OutputFolder: outputFolder,
	}, nil
}

// OutputFilename returns <basename-without-extension>.<format>
func (r *ConversionRequest) OutputFilename() string {
	base := filepath.Base(r.Item.SourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return name + "." + string(r.Format)
}

// OutputPath returns the full output path inside OutputFolder
func (r *ConversionRequest) OutputPath() string {
	return filepath.Join(r.OutputFolder, r.OutputFilename())
}
