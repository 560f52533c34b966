package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raykavin/signalert/core"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `{
	"binance": {
		"BTC/USDT": {
			"indicators": {
				"rsi": [{
					"config": {
						"signal": ["rsi"],
						"alert_frequency": "once",
						"alert_enabled": true
					},
					"result": [{"is_hot": true, "is_cold": false, "rsi": 25.5}]
				}]
			}
		}
	}
}`

func TestHTTP_Next(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(snapshotJSON))
	}))
	defer server.Close()

	snapshot, err := NewHTTP(server.URL).Next(context.Background())
	require.NoError(t, err)

	occurrences := snapshot["binance"]["BTC/USDT"].Indicators["rsi"]
	require.Len(t, occurrences, 1)

	occurrence := occurrences[0]
	require.True(t, occurrence.Config.AlertEnabled)
	require.Equal(t, core.FrequencyOnce, occurrence.Config.AlertFrequency)

	row, ok := occurrence.LastRow()
	require.True(t, ok)
	require.Equal(t, 25.5, row["rsi"])
}

func TestHTTP_NextServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTP(server.URL).Next(context.Background())
	require.Error(t, err)
}

func TestHTTP_NextMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewHTTP(server.URL).Next(context.Background())
	require.ErrorIs(t, err, core.ErrMalformedAnalysis)
}
