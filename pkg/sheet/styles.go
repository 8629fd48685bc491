package sheet

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles the sheet renders with. Hosts override
// individual entries via WithStyles.
type Styles struct {
	// Panel wraps the sheet body. Width and height are applied per
	// render.
	Panel lipgloss.Style
	// Handle is the grab indicator centered in the panel's top border
	// row.
	Handle lipgloss.Style
	// Backdrop restyles background lines while the overlay fades in.
	Backdrop lipgloss.Style
	// BackdropHeavy is the fully faded backdrop.
	BackdropHeavy lipgloss.Style
	// ScaledBackground restyles the background while it is scaled away.
	ScaledBackground lipgloss.Style
}

// Colors shared with the default styles.
var (
	borderColor   = lipgloss.Color("240")
	handleColor   = lipgloss.Color("245")
	backdropColor = lipgloss.Color("240")
	dimmedColor   = lipgloss.Color("237")
)

// DefaultStyles returns the stock sheet appearance.
func DefaultStyles() Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1),
		Handle: lipgloss.NewStyle().
			Foreground(handleColor).
			Bold(true),
		Backdrop: lipgloss.NewStyle().
			Foreground(backdropColor),
		BackdropHeavy: lipgloss.NewStyle().
			Foreground(dimmedColor),
		ScaledBackground: lipgloss.NewStyle().
			Foreground(backdropColor),
	}
}
