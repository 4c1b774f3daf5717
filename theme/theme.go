package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

// Symbols draw the key lanes of an allocation map
type Symbols struct {
	Idle     rune // · key unused at this column
	Onset    rune // ▶ a tone starts on the key
	Sounding rune // ━ a tone holds the key
	Retuned  rune // ◆ sounding tone with an explicit tuning set
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Idle:     '·',
			Onset:    '▶',
			Sounding: '━',
			Retuned:  '◆',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) FG() lipgloss.Color { return t.Color(RoleFG) }
func (t *Theme) Muted() lipgloss.Color { return t.Color(RoleMuted) }
func (t *Theme) Accent() lipgloss.Color { return t.Color(RoleAccent) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Deviation colours a pitch deviation: the middle of the palette is in
// tune, the ends are the edges of the bend range
func (t *Theme) Deviation(cents, maxCents float64) lipgloss.Color {
	if maxCents <= 0 {
		return t.Color(0.5)
	}
	return t.Color((cents + maxCents) / (2 * maxCents))
}

// Report styles

func (t *Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent())
}

func (t *Theme) Label() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted()).Width(14)
}

func (t *Theme) Value() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.FG())
}

func (t *Theme) Alert() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning())
}

func (t *Theme) Box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted()).
		Padding(0, 1)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
