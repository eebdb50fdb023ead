package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

// sniffSize is how much of the file header filetype needs to match
const sniffSize = 8192

// DetectMediaType sniffs the container type of the file at path.
// It returns filetype.Unknown when the header matches nothing.
func DetectMediaType(path string) (types.Type, error) {
	f, err := os.Open(path)
	if err != nil {
		return filetype.Unknown, err
	}
	defer f.Close()

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return filetype.Unknown, fmt.Errorf("failed to read header: %w", err)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return filetype.Unknown, err
	}
	return kind, nil
}

// IsVideoFile reports whether the file at path has a known video container header.
func IsVideoFile(path string) bool {
	kind, err := DetectMediaType(path)
	if err != nil {
		Debug("media sniff failed for %s: %v", path, err)
		return false
	}
	return kind.MIME.Type == "video"
}
