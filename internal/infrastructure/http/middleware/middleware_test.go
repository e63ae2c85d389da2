package middleware

import (
	"bytes"
	"compress/gzip"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/pkg/errors"
)

type MiddlewareTestSuite struct {
	suite.Suite
	cfg        *config.Config
	registry   *prometheus.Registry
	middleware *Middleware
}

func (s *MiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *MiddlewareTestSuite) SetupTest() {
	s.cfg = &config.Config{
		App:       config.AppConfig{Environment: "production"},
		Server:    config.ServerConfig{EnableCORS: true, AllowedOrigins: []string{"https://catalog.example"}, EnableCompression: true},
		RateLimit: config.RateLimitConfig{Enable: true, RequestsPerMin: 60, BurstSize: 2},
	}
	s.registry = prometheus.NewRegistry()
	s.middleware = New(s.cfg, NewMetrics(s.registry), zap.NewNop())
}

func (s *MiddlewareTestSuite) serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (s *MiddlewareTestSuite) TestRequestID() {
	r := gin.New()
	r.Use(s.middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	rec := s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
	s.Equal(rec.Header().Get("X-Request-ID"), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = s.serve(r, req)
	s.Equal("abc-123", rec.Body.String())
}

func (s *MiddlewareTestSuite) TestSecurityHeaders() {
	r := gin.New()
	r.Use(s.middleware.Security())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.Equal("DENY", rec.Header().Get("X-Frame-Options"))
	s.Contains(rec.Header().Get("Content-Security-Policy"), "img-src 'self' data:")
	s.NotEmpty(rec.Header().Get("Strict-Transport-Security"))
}

func (s *MiddlewareTestSuite) TestCORS() {
	r := gin.New()
	r.Use(s.middleware.CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://catalog.example")
	rec := s.serve(r, req)
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("https://catalog.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = s.serve(r, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *MiddlewareTestSuite) TestRateLimit() {
	r := gin.New()
	r.Use(s.middleware.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	s.Equal(http.StatusOK, s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	s.Equal(http.StatusOK, s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	rec := s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("60", rec.Header().Get("Retry-After"))
}

func (s *MiddlewareTestSuite) TestRecovery() {
	r := gin.New()
	r.Use(s.middleware.RequestID(), s.middleware.Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	rec := s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), string(errors.CodeInternal))
}

func (s *MiddlewareTestSuite) TestErrorHandler() {
	r := gin.New()
	r.Use(s.middleware.ErrorHandler())
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(errors.NewRecipeNotFoundError(4)) })
	r.GET("/broken", func(c *gin.Context) { _ = c.Error(stderrors.New("db down")) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(stderrors.New("ignored"))
		c.String(http.StatusTeapot, "handled")
	})

	rec := s.serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), string(errors.CodeRecipeNotFound))

	rec = s.serve(r, httptest.NewRequest(http.MethodGet, "/broken", nil))
	s.Equal(http.StatusInternalServerError, rec.Code)

	rec = s.serve(r, httptest.NewRequest(http.MethodGet, "/written", nil))
	s.Equal(http.StatusTeapot, rec.Code)
	s.Equal("handled", rec.Body.String())
}

func (s *MiddlewareTestSuite) TestMetrics() {
	r := gin.New()
	r.Use(s.middleware.Metrics())
	r.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	s.serve(r, httptest.NewRequest(http.MethodGet, "/recipes/1", nil))
	s.serve(r, httptest.NewRequest(http.MethodGet, "/recipes/2", nil))

	s.Equal(2.0, testutil.ToFloat64(s.middleware.metrics.requestCount.WithLabelValues("GET", "/recipes/:id", "200")))
	s.Equal(0.0, testutil.ToFloat64(s.middleware.metrics.activeRequests))
}

func (s *MiddlewareTestSuite) TestCompression() {
	body := strings.Repeat("recipe catalog ", 200)
	r := gin.New()
	r.Use(s.middleware.Compression())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, body) })
	r.GET("/redirect", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	s.Run("brotli", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
		rec := s.serve(r, req)

		s.Equal("br", rec.Header().Get("Content-Encoding"))
		decoded, err := io.ReadAll(brotli.NewReader(rec.Body))
		s.Require().NoError(err)
		s.Equal(body, string(decoded))
	})

	s.Run("gzip", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := s.serve(r, req)

		s.Equal("gzip", rec.Header().Get("Content-Encoding"))
		reader, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
		s.Require().NoError(err)
		decoded, err := io.ReadAll(reader)
		s.Require().NoError(err)
		s.Equal(body, string(decoded))
	})

	s.Run("identity", func() {
		rec := s.serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		s.Empty(rec.Header().Get("Content-Encoding"))
		s.Equal(body, rec.Body.String())
	})

	s.Run("no body", func() {
		req := httptest.NewRequest(http.MethodGet, "/redirect", nil)
		req.Header.Set("Accept-Encoding", "br")
		rec := s.serve(r, req)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Header().Get("Content-Encoding"))
		s.Zero(rec.Body.Len())
	})
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func TestNegotiateEncoding(t *testing.T) {
	assert.Equal(t, "br", negotiateEncoding("gzip;q=0.8, br"))
	assert.Equal(t, "gzip", negotiateEncoding("deflate, gzip"))
	assert.Equal(t, "", negotiateEncoding("identity"))
	require.Equal(t, "", negotiateEncoding(""))
}
