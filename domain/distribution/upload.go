package distribution

import "audio-converter/domain/conversion"

// UploadRequest contains the parameters needed to upload a file to Google Drive
type UploadRequest struct {
	LocalPath string // Full path to the local file
	FileName  string // Target filename in Google Drive
	FolderID  string // Target folder ID in Google Drive
	MimeType  string // MIME type of the file
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	FileID       string // Google Drive file ID
	FileName     string // Name of the uploaded file
	ShareableURL string // URL for sharing the file
	Size         int64  // Size of the uploaded file in bytes
}

// MIME types of the converted audio files
const (
	MimeTypeMP3 = "audio/mpeg"
	MimeTypeWAV = "audio/wav"
	MimeTypeAAC = "audio/aac"
	MimeTypeOGG = "audio/ogg"
)

// MimeTypeFor returns the MIME type of an output format
func MimeTypeFor(format conversion.Format) string {
	switch format {
	case conversion.FormatMP3:
		return MimeTypeMP3
	case conversion.FormatWAV:
		return MimeTypeWAV
	case conversion.FormatAAC:
		return MimeTypeAAC
	case conversion.FormatOGG:
		return MimeTypeOGG
	default:
		return "application/octet-stream"
	}
}
