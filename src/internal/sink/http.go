// FILE: logtools/src/internal/sink/http.go
package sink

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"logtools/src/internal/config"
	"logtools/src/internal/core"
	"logtools/src/internal/format"
	"logtools/src/internal/tokenbucket"
	"logtools/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// HTTPSink posts batches of formatted entries to a remote endpoint.
// A batch is sent once it reaches the configured size and on Flush.
type HTTPSink struct {
	url    string
	config config.HTTPOutputOptions

	client    *fasthttp.Client
	pacer     *tokenbucket.TokenBucket
	formatter format.Formatter
	logger    *log.Logger

	batch     []core.LabeledEntry
	startTime time.Time
	closed    bool

	// Statistics
	totalProcessed uint64
	totalBatches   uint64
	failedBatches  uint64
	lastProcessed  time.Time
	lastBatchSent  time.Time
}

// NewHTTPSink creates a sink posting to url. Nil opts select the defaults.
func NewHTTPSink(url string, opts *config.HTTPOutputOptions, formatter format.Formatter, logger *log.Logger) (*HTTPSink, error) {
	if opts == nil {
		opts = config.Default().Output.HTTP
	}
	if opts.BatchSize < 1 {
		return nil, fmt.Errorf("HTTP batch size must be positive: %d", opts.BatchSize)
	}
	if opts.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("HTTP timeout must be positive: %d", opts.TimeoutSeconds)
	}
	if opts.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("HTTP request rate must not be negative: %g", opts.RequestsPerSecond)
	}

	h := &HTTPSink{
		url:       url,
		config:    *opts,
		formatter: formatter,
		logger:    logger,
		batch:     make([]core.LabeledEntry, 0, opts.BatchSize),
		startTime: time.Now(),
	}

	h.client = &fasthttp.Client{
		MaxConnsPerHost:               4,
		MaxIdleConnDuration:           10 * time.Second,
		ReadTimeout:                   h.timeout(),
		WriteTimeout:                  h.timeout(),
		DisableHeaderNamesNormalizing: true,
	}

	if opts.RequestsPerSecond > 0 {
		h.pacer = tokenbucket.New(1, opts.RequestsPerSecond)
	}

	if strings.HasPrefix(url, "https://") && opts.InsecureSkip {
		h.client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
		logger.Warn("msg", "TLS certificate verification disabled",
			"component", "http_sink",
			"url", url)
	}

	logger.Debug("msg", "HTTP sink opened",
		"component", "http_sink",
		"url", url,
		"batch_size", opts.BatchSize,
		"max_retries", opts.MaxRetries,
		"requests_per_second", opts.RequestsPerSecond)
	return h, nil
}

func (h *HTTPSink) timeout() time.Duration {
	return time.Duration(h.config.TimeoutSeconds) * time.Second
}

func (h *HTTPSink) Write(entry core.LabeledEntry) error {
	if h.closed {
		return fmt.Errorf("%w: write to closed http sink", core.ErrIO)
	}

	h.batch = append(h.batch, entry)
	h.totalProcessed++
	h.lastProcessed = time.Now()

	if int64(len(h.batch)) >= h.config.BatchSize {
		return h.Flush()
	}
	return nil
}

// Flush sends the pending batch. A batch that cannot be delivered is dropped
// and reported as an error.
func (h *HTTPSink) Flush() error {
	if len(h.batch) == 0 {
		return nil
	}
	batch := h.batch
	h.batch = make([]core.LabeledEntry, 0, h.config.BatchSize)
	return h.sendBatch(batch)
}

func (h *HTTPSink) Close() error {
	if h.closed {
		return nil
	}
	err := h.Flush()
	h.closed = true
	h.client.CloseIdleConnections()

	h.logger.Debug("msg", "HTTP sink closed",
		"component", "http_sink",
		"total_processed", h.totalProcessed,
		"total_batches", h.totalBatches,
		"failed_batches", h.failedBatches)
	return err
}

func (h *HTTPSink) GetStats() SinkStats {
	return SinkStats{
		Type:           "http",
		TotalProcessed: h.totalProcessed,
		StartTime:      h.startTime,
		LastProcessed:  h.lastProcessed,
		Details: map[string]any{
			"url":             h.url,
			"batch_size":      h.config.BatchSize,
			"pending_entries": len(h.batch),
			"total_batches":   h.totalBatches,
			"failed_batches":  h.failedBatches,
			"last_batch_sent": h.lastBatchSent,
		},
	}
}

func (h *HTTPSink) encode(batch []core.LabeledEntry) ([]byte, string, error) {
	if bf, ok := h.formatter.(format.BatchFormatter); ok {
		body, err := bf.FormatBatch(batch)
		return body, "application/json", err
	}

	var buf bytes.Buffer
	for _, entry := range batch {
		b, err := h.formatter.Format(entry)
		if err != nil {
			return nil, "", err
		}
		buf.Write(b)
	}
	return buf.Bytes(), "text/plain; charset=utf-8", nil
}

// sendBatch posts one batch, retrying transport failures and 5xx responses.
func (h *HTTPSink) sendBatch(batch []core.LabeledEntry) error {
	h.totalBatches++
	h.lastBatchSent = time.Now()

	body, contentType, err := h.encode(batch)
	if err != nil {
		h.failedBatches++
		return fmt.Errorf("formatting batch: %w", err)
	}

	var lastErr error
	retryDelay := time.Duration(h.config.RetryDelayMS) * time.Millisecond

	for attempt := int64(0); attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
			// Double the delay, capped at the request timeout
			if next := retryDelay * 2; next > h.timeout() || next < retryDelay {
				retryDelay = h.timeout()
			} else {
				retryDelay = next
			}
		}

		if h.pacer != nil {
			if waited := h.pacer.Wait(); waited > 0 {
				h.logger.Debug("msg", "Request paced",
					"component", "http_sink",
					"waited_ms", waited.Milliseconds())
			}
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()

		req.SetRequestURI(h.url)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType(contentType)
		req.Header.Set("User-Agent", fmt.Sprintf("logtools/%s", version.Short()))
		req.SetBody(body)

		err := h.client.DoTimeout(req, resp, h.timeout())

		statusCode := resp.StatusCode()
		responseBody := append([]byte(nil), resp.Body()...)

		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			h.logger.Warn("msg", "HTTP request failed",
				"component", "http_sink",
				"attempt", attempt+1,
				"max_retries", h.config.MaxRetries,
				"error", err)
			continue
		}

		if statusCode >= 200 && statusCode < 300 {
			h.logger.Debug("msg", "Batch sent",
				"component", "http_sink",
				"batch_size", len(batch),
				"status_code", statusCode,
				"attempt", attempt+1)
			return nil
		}

		lastErr = fmt.Errorf("server returned status %d: %s", statusCode, responseBody)

		// Client errors are not retried
		if statusCode >= 400 && statusCode < 500 {
			h.failedBatches++
			return fmt.Errorf("%w: batch rejected: %v", core.ErrIO, lastErr)
		}

		h.logger.Warn("msg", "Server returned error status",
			"component", "http_sink",
			"attempt", attempt+1,
			"status_code", statusCode)
	}

	h.failedBatches++
	return fmt.Errorf("%w: batch of %d entries not delivered after %d retries: %v",
		core.ErrIO, len(batch), h.config.MaxRetries, lastErr)
}
