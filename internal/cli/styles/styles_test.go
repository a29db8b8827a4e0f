package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tock/internal/config"
)

func TestTable_ContainsCells(t *testing.T) {
	Init(config.MonochromeColorScheme())

	out := Table(
		[]string{"ID", "Description"},
		[][]string{{"1", "Write report"}, {"2", "Review"}},
		func(row int) bool { return row == 1 },
	)

	assert.Contains(t, out, "Description")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Review")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 4)
}

func TestField(t *testing.T) {
	out := Field("Project", "Web")
	assert.Contains(t, out, "Project:")
	assert.Contains(t, out, "Web")
}
