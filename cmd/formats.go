package cmd

import (
	"fmt"
	"text/tabwriter"

	"audio-converter/domain/conversion"
	"audio-converter/domain/distribution"
	"audio-converter/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunFormats(DefaultOutput)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

// RunFormats prints each output format with its encoder
func RunFormats(out OutputWriter) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tENCODER\tMIME TYPE\tBITRATE")
	for _, f := range conversion.SupportedFormats {
		codec, err := ffmpeg.CodecFor(f)
		if err != nil {
			return err
		}
		bitrate := "configurable"
		if codec.Lossless {
			bitrate = "lossless"
		}
		fmt.Fprintf(w, "%s\tffmpeg %s\t%s\t%s\n", f, codec.Name, distribution.MimeTypeFor(f), bitrate)
	}
	return w.Flush()
}
