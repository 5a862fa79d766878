package datasource

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File is an uploaded or selected file, read whole when resolved
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Channels holds the two mutually exclusive input channels of one run
type Channels struct {
	// Text is the pasted-text channel
	Text string
	// File is the file channel; nil when no file is selected
	File File
}

// HasText reports whether the text channel is populated
func (c Channels) HasText() bool {
	return strings.TrimSpace(c.Text) != ""
}

// HasFile reports whether a file is selected, whatever its content
func (c Channels) HasFile() bool {
	return c.File != nil
}

// PathFile is a file on the local filesystem
type PathFile string

func (p PathFile) Name() string { return filepath.Base(string(p)) }

func (p PathFile) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

// BytesFile is an in-memory file
type BytesFile struct {
	Filename string
	Data     []byte
}

func (b BytesFile) Name() string { return b.Filename }

func (b BytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// OversizedFile stands for an upload that was cut off at the size limit.
// It still counts as a selected file; opening it reports the limit.
type OversizedFile struct {
	Filename string
	Limit    int64
}

func (o OversizedFile) Name() string { return o.Filename }

func (o OversizedFile) Open() (io.ReadCloser, error) { return nil, FileTooLarge(o.Limit) }

// FileTooLarge is the error for a file over limit bytes
func FileTooLarge(limit int64) error {
	return fmt.Errorf("file exceeds the %.1f MB limit", float64(limit)/(1024*1024))
}
