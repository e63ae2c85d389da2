package middleware

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"
)

// Compression encodes responses with brotli or gzip, preferring brotli when
// the client accepts both
func (m *Middleware) Compression() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Server.EnableCompression || c.Request.Method == "HEAD" {
			c.Next()
			return
		}

		encoding := negotiateEncoding(c.GetHeader("Accept-Encoding"))
		if encoding == "" {
			c.Next()
			return
		}

		w := &compressWriter{ResponseWriter: c.Writer, encoding: encoding}
		c.Writer = w
		defer func() {
			if err := w.Close(); err != nil {
				m.logger.Warn("Failed to finish compressed response", zap.Error(err))
			}
		}()

		c.Next()
	}
}

func negotiateEncoding(acceptEncoding string) string {
	var gzipOK bool
	for _, part := range strings.Split(acceptEncoding, ",") {
		token := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch strings.ToLower(token) {
		case encodingBrotli:
			return encodingBrotli
		case encodingGzip:
			gzipOK = true
		}
	}
	if gzipOK {
		return encodingGzip
	}
	return ""
}

// compressWriter starts the encoder on the first body write so bodiless
// responses such as redirects and 204s stay untouched
type compressWriter struct {
	gin.ResponseWriter
	encoding string
	encoder  io.WriteCloser
}

func (w *compressWriter) Write(data []byte) (int, error) {
	if w.encoder == nil {
		h := w.Header()
		h.Set("Content-Encoding", w.encoding)
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")

		if w.encoding == encodingBrotli {
			w.encoder = brotli.NewWriterLevel(w.ResponseWriter, brotli.DefaultCompression)
		} else {
			w.encoder, _ = gzip.NewWriterLevel(w.ResponseWriter, gzip.DefaultCompression)
		}
	}
	return w.encoder.Write(data)
}

func (w *compressWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *compressWriter) Close() error {
	if w.encoder == nil {
		return nil
	}
	return w.encoder.Close()
}
