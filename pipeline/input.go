// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxFileSize is the largest accepted input file, 50 MiB.
const MaxFileSize = 50 * 1024 * 1024

// FileInfo describes a candidate input file before it is read.
type FileInfo struct {
	Name     string
	MIMEType string
	Size     int64
}

// CheckInput validates info against MaxFileSize.
func CheckInput(info FileInfo) error {
	return info.Check(MaxFileSize)
}

// Check accepts audio MIME types and sizes up to limit bytes inclusive.
// A non-positive limit means MaxFileSize.
func (f FileInfo) Check(limit int64) error {
	if limit <= 0 {
		limit = MaxFileSize
	}

	if !strings.Contains(strings.ToLower(f.MIMEType), "audio/") {
		return &InvalidInputError{
			Reason: fmt.Sprintf("please select a valid audio file (got %q)", f.MIMEType),
		}
	}
	if f.Size > limit {
		return &InvalidInputError{
			Reason: fmt.Sprintf("the file is too large (%s), maximum is %s",
				humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(limit))),
		}
	}

	return nil
}
