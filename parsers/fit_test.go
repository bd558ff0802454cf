package parsers

import (
	"testing"

	"github.com/tormoder/fit"

	"github.com/stretchr/testify/assert"
)

func TestSportName(t *testing.T) {
	assert.Equal(t, "Running", sportName(fit.SportRunning))
	assert.Equal(t, "Cycling", sportName(fit.SportCycling))
	assert.Equal(t, "Unknown", sportName(fit.Sport(254)))
}
