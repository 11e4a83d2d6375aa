package terminal

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 3, DisplayWidth("abc"))
	assert.Equal(t, 1, DisplayWidth("\033[30;41;1mR\033[39;49;0m"))
}

func TestCenterString(t *testing.T) {
	assert.Equal(t, " ab  ", CenterString("ab", 5))
	assert.Equal(t, "abcdef", CenterString("abcdef", 3))
}

func TestPrintCentered(t *testing.T) {
	var buf bytes.Buffer
	PrintCentered(&buf, "ab\n\nabcd\n")
	indent := strings.Repeat(" ", (DefaultWidth-4)/2)
	assert.Equal(t, indent+"ab\n\n"+indent+"abcd\n", buf.String())
	assert.Equal(t, DefaultWidth, Width(&buf))
}
