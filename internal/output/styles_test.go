package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "available returns green", status: StatusAvailable, wantFG: ColorGreen},
		{name: "current returns faint", status: StatusCurrent, wantDim: true},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "degraded returns yellow", status: StatusDegraded, wantFG: ColorYellow},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: ColorBoldRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestStatusStyleUnknown(t *testing.T) {
	style := StatusStyle("something-else")
	assert.False(t, style.GetBold())
	assert.False(t, style.GetFaint())
}

func TestFormatStatusLine(t *testing.T) {
	line := FormatStatusLine("build 42", StatusAvailable)
	assert.Contains(t, line, "build 42")
	assert.Contains(t, line, StatusAvailable)
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("installer launched"), "installer launched")
	assert.Contains(t, FormatFailure("Unable to update app"), "Unable to update app")
}
