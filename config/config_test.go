package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	defer os.Unsetenv("DB_NAME")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
	assert.Equal(t, "test", conf.DatabaseName)
}

func TestNewDefaultsDatabaseName(t *testing.T) {
	os.Unsetenv("DB_NAME")
	conf := New()

	assert.Equal(t, DefaultDatabaseName, conf.DatabaseName)
	assert.Equal(t, 24*time.Hour, conf.JWTTTL)
	assert.Equal(t, 5, conf.EnquiryRatePerMinute)
	assert.Equal(t, "0 2 * * *", conf.DigestSchedule)
	assert.False(t, conf.TrustProxy)
}

func TestNewTrustProxy(t *testing.T) {
	os.Setenv("TRUST_PROXY", "true")
	defer os.Unsetenv("TRUST_PROXY")

	assert.True(t, New().TrustProxy)
}

func TestNewParsesLists(t *testing.T) {
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://druktrails.bt, https://admin.druktrails.bt,")
	defer os.Unsetenv("CORS_ALLOWED_ORIGINS")
	conf := New()

	assert.Equal(t, []string{"https://druktrails.bt", "https://admin.druktrails.bt"}, conf.CORSAllowedOrigins)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"response": "error it borked, bad request"}`, rr.Body.String())
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
