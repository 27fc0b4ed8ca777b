package filesystem

import (
	"fmt"
	"os"

	"audio-converter/domain/conversion"
)

// Checker implements conversion.DirectoryMaker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and any missing parents
func (c *Checker) EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// Ensure Checker implements conversion.DirectoryMaker
var _ conversion.DirectoryMaker = (*Checker)(nil)
