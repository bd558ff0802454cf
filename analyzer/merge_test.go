package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildContext(name string, n int, startMs uint64) *Context {
	ctx := NewContext(name, "Running")

	for i := 0; i < n; i++ {
		t := startMs + uint64(i)*1000
		ctx.Location.AppendLocation(t, 45.0+float64(i)*0.00003, -122.0, 0)
		ctx.Location.UpdateSpeeds()
		ctx.HeartRate.AppendSensorValue(t, 140)
	}

	return ctx
}

func TestMergeToolCombinesOverlappingStreams(t *testing.T) {
	a := buildContext("a", 20, 0)
	b := buildContext("b", 20, 0)

	merged, warnings := (MergeTool{}).Merge(a, b)

	assert.Empty(t, warnings)
	require.Len(t, merged.Location.Times, 20)
	require.Len(t, merged.HeartRate.Readings, 20)
	assert.Equal(t, "a + b", merged.Name)
}

func TestMergeToolWarnsOnDroppedTail(t *testing.T) {
	a := buildContext("a", 10, 0)
	b := buildContext("b", 25, 0)

	_, warnings := (MergeTool{}).Merge(a, b)

	require.NotEmpty(t, warnings)

	var locationWarning *MergeWarning
	for i := range warnings {
		if warnings[i].Stream == "location" {
			locationWarning = &warnings[i]
		}
	}

	require.NotNil(t, locationWarning)
	assert.Equal(t, 0, locationWarning.DroppedSamplesA)
	assert.Equal(t, 15, locationWarning.DroppedSamplesB)
}

func TestCloseEnoughToleranceWindow(t *testing.T) {
	assert.True(t, closeEnough(1000, 1500))
	assert.True(t, closeEnough(1500, 1000))
	assert.False(t, closeEnough(1000, 2001))
}
