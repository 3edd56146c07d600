package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ChargesCardAndWallet(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	chdir(t, t.TempDir())

	quoteSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"base":"BTC","currency":"USD","amount":"60000"}}`))
	}))
	defer quoteSrv.Close()
	conversionSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"ZAR":18}}`))
	}))
	defer conversionSrv.Close()

	t.Setenv("QUOTE_API_URL", quoteSrv.URL)
	t.Setenv("CONVERSION_API_URL", conversionSrv.URL)
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Charging 5000.00 ZAR to 2 payment methods", lines[0])
	assert.Regexp(t, `^\[1\] VISA SUCCESS: VISA_CONFIRMED_TXN_.{4}$`, lines[1])
	assert.Regexp(t, `^\[2\] BTC SUCCESS: BTC_CONFIRMED_TXN_.{4}$`, lines[2])
	assert.Equal(t, "    charged 0.0046296296 BTC (rate 1080000)", lines[3])
	assert.Equal(t, "done: 2 processed, 2 confirmed, 0 failed, 0 invalid", lines[4])
}

func TestRun_LookupFailureStillSucceeds(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	chdir(t, t.TempDir())

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	t.Setenv("QUOTE_API_URL", down.URL)
	t.Setenv("CONVERSION_API_URL", down.URL)
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "[2] BTC FAILED: BTC_FAIL_API_ERROR")
	assert.Contains(t, stdout.String(), "done: 2 processed, 1 confirmed, 1 failed, 0 invalid")
}

func TestRun_InvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHARGE_AMOUNT", "lots")

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}
