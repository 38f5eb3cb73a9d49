package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infralab/internal/advisor"
	"infralab/internal/gateway/handler"
	"infralab/internal/llm"
	"infralab/internal/llmtool"
)

func TestNewMux_ServesThroughCORSAndH2C(t *testing.T) {
	adv := advisor.New(llmtool.NewGenerator(llm.NewFakeClient(), llmtool.WithBackoff(0)))
	h := handler.New(adv, nil, nil, log.New(io.Discard, "", 0))
	srv := New(":0", NewMux(h, []string{"http://localhost:3000"}), log.New(io.Discard, "", 0))

	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	resp2, err := ts.Client().Get(ts.URL + "/proposals/" + "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
