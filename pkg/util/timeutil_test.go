package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowUTC(t *testing.T) {
	now := NowUTC()
	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestFixed(t *testing.T) {
	at := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	clock := Fixed(at)
	require.Equal(t, at, clock())
	require.Equal(t, at, clock())
}
