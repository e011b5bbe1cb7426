// Package logging configures logrus for the service and carries
// request-scoped log entries through context.Context and gin.Context.
//
// Every HTTP request gets an entry tagged with a request ID, taken from the
// X-Request-ID header when the client sends one and generated otherwise:
//
//	router.Use(logging.RequestLogger(logger))
//	...
//	logging.FromGin(c).WithError(err).Error("failed to load user")
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/userbooks/internal/config"
)

const (
	// RequestIDHeader is read from requests and echoed on responses
	RequestIDHeader = "X-Request-ID"

	requestIDField = "request_id"
	ginEntryKey    = "log_entry"
)

type contextKey struct{}

// New builds a logger from configuration. The returned closer releases the
// log file, if one was opened, and is never nil.
func New(cfg config.Log) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var closer io.Closer = nopCloser{}
	logger.SetOutput(os.Stdout)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, f))
		closer = f
	}

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ContextWithEntry returns a copy of ctx carrying entry.
func ContextWithEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, contextKey{}, entry)
}

// FromContext returns the entry stored in ctx, or an entry on the standard
// logger when there is none.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(contextKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// FromGin returns the request-scoped entry set by RequestLogger.
func FromGin(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(ginEntryKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return FromContext(c.Request.Context())
}

// RequestLogger tags each request with an ID, stores the request entry in
// both contexts and writes one access line when the handler chain returns.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		entry := logger.WithField(requestIDField, requestID)
		c.Set(ginEntryKey, entry)
		c.Request = c.Request.WithContext(ContextWithEntry(c.Request.Context(), entry))

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		access := entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			access.Error("request completed")
		case status >= 400:
			access.Warn("request completed")
		default:
			access.Info("request completed")
		}
	}
}

// GormLogger routes gorm's logging through logger. SQL statements are only
// traced when logger is at debug level; slow queries and errors always are.
func GormLogger(logger *logrus.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
