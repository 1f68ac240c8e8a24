package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	snap := Collect()
	assert.Equal(t, runtime.Version(), snap.GoVersion)
	assert.NotEmpty(t, snap.OS)
	assert.GreaterOrEqual(t, snap.ProcessUptime, 0.0)
	assert.GreaterOrEqual(t, snap.MemUsage, 0.0)
	assert.LessOrEqual(t, snap.MemUsage, 100.0)
}
