// FILE: logtools/src/internal/sink/file.go
package sink

import (
	"fmt"
	"os"

	"logtools/src/internal/core"
	"logtools/src/internal/format"

	"github.com/lixenwraith/log"
)

// NewFileSink creates or truncates path and writes entries to it.
func NewFileSink(path string, formatter format.Formatter, logger *log.Logger) (*WriterSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrIO, err)
	}

	logger.Debug("msg", "File sink opened",
		"component", "file_sink",
		"path", path)
	return NewWriterSink("file", f, formatter, logger), nil
}
