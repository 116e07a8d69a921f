package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stridefoot/footwear-erp-api/logger"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusNotFound, zapcore.WarnLevel},
		{"server error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

			router := gin.New()
			router.Use(StaticActor("qc-lead"), RequestLogger(log))
			router.GET("/api/orders", func(c *gin.Context) { c.Status(tt.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders", nil))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "GET", fields["method"])
			assert.Equal(t, "/api/orders", fields["path"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, "qc-lead", fields["actor"])
		})
	}
}
