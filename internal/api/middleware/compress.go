package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// CompressConfig controls response compression.
type CompressConfig struct {
	// MinBytes is the smallest body worth compressing
	MinBytes int
	Level    int
}

// DefaultCompressConfig returns the default compression configuration.
func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		MinBytes: 1024,
		Level:    gzip.DefaultCompression,
	}
}

// Compress gzips response bodies of at least MinBytes for clients that
// accept it. Bodies are buffered up to the threshold, so small responses go
// out unchanged. WebSocket upgrades and already encoded responses are left
// alone.
func Compress(cfg CompressConfig) gin.HandlerFunc {
	if cfg.MinBytes <= 0 {
		cfg.MinBytes = DefaultCompressConfig().MinBytes
	}
	level := cfg.Level
	if _, err := gzip.NewWriterLevel(io.Discard, level); err != nil {
		level = gzip.DefaultCompression
	}

	pool := &sync.Pool{
		New: func() any {
			gz, _ := gzip.NewWriterLevel(io.Discard, level)
			return gz
		},
	}

	return func(c *gin.Context) {
		if !acceptsGzip(c.Request) || isUpgrade(c.Request) || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		gw := &gzipWriter{
			ResponseWriter: c.Writer,
			pool:           pool,
			minBytes:       cfg.MinBytes,
			status:         http.StatusOK,
		}
		c.Writer = gw
		defer func() {
			gw.finish()
			c.Writer = gw.ResponseWriter
		}()

		c.Next()
	}
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func isUpgrade(r *http.Request) bool {
	return r.Header.Get("Upgrade") != "" ||
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

// gzipWriter holds the body back until it either reaches the threshold, at
// which point it switches to gzip, or the handler returns.
type gzipWriter struct {
	gin.ResponseWriter
	pool     *sync.Pool
	minBytes int

	status      int
	wroteHeader bool
	buf         bytes.Buffer
	gz          *gzip.Writer
	passthrough bool
}

func (w *gzipWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
	}
	w.wroteHeader = true
}

func (w *gzipWriter) WriteHeaderNow() {
	w.wroteHeader = true
}

func (w *gzipWriter) Status() int {
	if w.passthrough || w.gz != nil {
		return w.ResponseWriter.Status()
	}
	return w.status
}

func (w *gzipWriter) Written() bool {
	return w.wroteHeader || w.buf.Len() > 0 || w.gz != nil || w.passthrough
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipWriter) Write(p []byte) (int, error) {
	switch {
	case w.gz != nil:
		return w.gz.Write(p)
	case w.passthrough:
		return w.ResponseWriter.Write(p)
	}

	w.buf.Write(p)
	if w.buf.Len() < w.minBytes {
		return len(p), nil
	}

	var err error
	if w.compressible() {
		err = w.startGzip()
	} else {
		err = w.startPassthrough()
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *gzipWriter) Flush() {
	if w.gz == nil && !w.passthrough {
		_ = w.startPassthrough()
	}
	if w.gz != nil {
		_ = w.gz.Flush()
	}
	w.ResponseWriter.Flush()
}

func (w *gzipWriter) compressible() bool {
	if w.Header().Get("Content-Encoding") != "" {
		return false
	}
	return w.status != http.StatusNoContent && w.status != http.StatusNotModified
}

func (w *gzipWriter) startGzip() error {
	h := w.Header()
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)

	gz := w.pool.Get().(*gzip.Writer)
	gz.Reset(w.ResponseWriter)
	w.gz = gz

	_, err := gz.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *gzipWriter) startPassthrough() error {
	w.passthrough = true
	w.ResponseWriter.WriteHeader(w.status)
	w.ResponseWriter.WriteHeaderNow()
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// finish emits whatever is still held back
func (w *gzipWriter) finish() {
	switch {
	case w.gz != nil:
		_ = w.gz.Close()
		w.gz.Reset(io.Discard)
		w.pool.Put(w.gz)
	case w.passthrough:
	case w.Written():
		_ = w.startPassthrough()
	}
}
