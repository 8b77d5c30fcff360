package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/plus3/blockfall/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func metricsUp(addr string) bool {
	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func TestRunWithMetricsWithoutRegistry(t *testing.T) {
	ctx := context.Background()
	var got context.Context
	err := runWithMetrics(ctx, config.Default(), nil, discardLogger(), func(c context.Context) error {
		got = c
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, ctx, got)
}

func TestRunWithMetricsServesWhileRunning(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Addr = freeAddr(t)

	var (
		runCtx context.Context
		served bool
	)
	sentinel := errors.New("window closed")
	err := runWithMetrics(context.Background(), cfg, prometheus.NewRegistry(), discardLogger(), func(ctx context.Context) error {
		runCtx = ctx
		served = assert.Eventually(t, func() bool { return metricsUp(cfg.Metrics.Addr) }, 2*time.Second, 10*time.Millisecond)
		assert.NoError(t, ctx.Err())
		return sentinel
	})

	// run executes before runWithMetrics returns, and its error wins.
	require.ErrorIs(t, err, sentinel)
	require.True(t, served)
	assert.Error(t, runCtx.Err())
	assert.False(t, metricsUp(cfg.Metrics.Addr), "endpoint must stop once run returns")
}

func TestRunWithMetricsReportsServerFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.Default()
	cfg.Metrics.Addr = ln.Addr().String()

	err = runWithMetrics(context.Background(), cfg, prometheus.NewRegistry(), discardLogger(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
			t.Error("run was not cancelled after the endpoint failed")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics endpoint")
}
