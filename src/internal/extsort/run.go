// FILE: logtools/src/internal/extsort/run.go
package extsort

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"logtools/src/internal/core"

	"github.com/klauspost/compress/zstd"
)

const runBufferSize = 64 * 1024

// run is a spilled, time-ordered batch of entries on disk.
type run struct {
	path  string
	count int
}

// runWriter streams entries into a new temporary run file as JSON lines,
// optionally zstd compressed.
type runWriter struct {
	file  *os.File
	zw    *zstd.Encoder
	bw    *bufio.Writer
	enc   *json.Encoder
	count int
}

func createRun(dir string, compress bool) (*runWriter, error) {
	pattern := "logtools-run-*.jsonl"
	if compress {
		pattern += ".zst"
	}
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: creating sort run: %v", core.ErrResource, err)
	}

	w := &runWriter{file: f}
	var sink io.Writer = f
	if compress {
		zw, err := zstd.NewWriter(f,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, fmt.Errorf("%w: creating run encoder: %v", core.ErrResource, err)
		}
		w.zw = zw
		sink = zw
	}
	w.bw = bufio.NewWriterSize(sink, runBufferSize)
	w.enc = json.NewEncoder(w.bw)
	w.enc.SetEscapeHTML(false)
	return w, nil
}

func (w *runWriter) path() string {
	return w.file.Name()
}

func (w *runWriter) write(e core.Entry) error {
	if err := w.enc.Encode(e); err != nil {
		return fmt.Errorf("%w: writing run %s: %v", core.ErrIO, w.path(), err)
	}
	w.count++
	return nil
}

// finish flushes and closes the file. The file is left on disk.
func (w *runWriter) finish() (run, error) {
	err := w.bw.Flush()
	if w.zw != nil {
		err = errors.Join(err, w.zw.Close())
	}
	err = errors.Join(err, w.file.Close())
	if err != nil {
		return run{}, fmt.Errorf("%w: finishing run %s: %v", core.ErrIO, w.path(), err)
	}
	return run{path: w.path(), count: w.count}, nil
}

// abort closes and removes a run that will not be used.
func (w *runWriter) abort() {
	if w.zw != nil {
		w.zw.Close()
	}
	w.file.Close()
	os.Remove(w.path())
}

// runReader replays a run as a core.Stream.
type runReader struct {
	path   string
	file   *os.File
	zr     *zstd.Decoder
	dec    *json.Decoder
	closed bool
}

func openRun(r run, compressed bool) (*runReader, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening run: %v", core.ErrResource, err)
	}

	rr := &runReader{path: r.path, file: f}
	var src io.Reader = f
	if compressed {
		zr, err := zstd.NewReader(f,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: creating run decoder: %v", core.ErrResource, err)
		}
		rr.zr = zr
		src = zr
	}
	rr.dec = json.NewDecoder(bufio.NewReaderSize(src, runBufferSize))
	return rr, nil
}

func (r *runReader) Next() (core.Entry, error) {
	if r.closed {
		return core.Entry{}, io.EOF
	}
	var e core.Entry
	if err := r.dec.Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Entry{}, io.EOF
		}
		return core.Entry{}, fmt.Errorf("%w: reading run %s: %v", core.ErrIO, r.path, err)
	}
	return e, nil
}

func (r *runReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.zr != nil {
		r.zr.Close()
	}
	return r.file.Close()
}
