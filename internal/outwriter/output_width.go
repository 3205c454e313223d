package outwriter

import (
	"os"

	"github.com/forgepulse/forgepulse/internal/contract"
	"golang.org/x/term"
)

// GetOutputWidth returns the terminal width to render tables into.
func GetOutputWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return 80
	}
	return detectedWidth
}

// truncateCell shortens a cell so wide values like issue titles and URLs
// do not blow out the table layout.
func truncateCell(cell string, termWidth, columns int) string {
	if columns == 0 {
		return cell
	}

	// Reserve space for borders, separators and padding per column
	available := (termWidth - 4*columns) / columns
	if available < 15 {
		available = 15
	}
	if len(cell) <= available {
		return cell
	}
	return cell[:available-3] + "..."
}
