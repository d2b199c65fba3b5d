package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/pager"
)

// Terminal palette (256-colour codes). Electrons are teal and photons amber
// wherever a diagram is drawn.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorTeal)

	styleSpinner  = lipgloss.NewStyle().Foreground(colorTeal)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleLabel    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleElectron = lipgloss.NewStyle().Foreground(colorTeal)
	stylePhoton   = lipgloss.NewStyle().Foreground(colorAmber)
	styleSelected = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// status marks the start of a one-line report.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusNote = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(format string, args ...any) {
	fmt.Println(s.style.Render(s.icon) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusOK.print(format, args...) }
func printError(format string, args ...any)   { statusFail.print(format, args...) }
func printInfo(format string, args ...any)    { statusNote.print(format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printCount reports a diagram count, then how it was obtained:
//
//	✓ 24 diagrams
//	  28 pairings · 1.2ms · fresh
func printCount(res *pager.CountResult) {
	printSuccess("%s diagrams", StyleNumber.Render(strconv.Itoa(res.Diagrams)))

	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if res.Cached {
		origin = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " +
		StyleDim.Render(fmt.Sprintf("%d pairings", res.Attempts)) + sep +
		StyleDim.Render(res.Duration.Round(time.Microsecond).String()) + sep +
		origin)
}

// headerRow is the row index lipgloss passes to StyleFunc for headers.
const headerRow = -1

// diagramTable lays out diagrams one per row, numbered from offset+1. The
// row at index selected is highlighted; pass -1 for none.
func diagramTable(offset int, ds []io.Diagram, selected int) *table.Table {
	rows := make([][]string, len(ds))
	for i, d := range ds {
		rows[i] = []string{
			strconv.Itoa(offset + i + 1),
			strings.Join(d.ElectronConnections, "  "),
			strings.Join(d.PhotonConnections, "  "),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Electrons", "Photons").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return cell.Inherit(styleHeader)
			case row == selected:
				return cell.Inherit(styleSelected)
			case col == 0:
				return cell.Foreground(colorDim)
			case col == 1:
				return cell.Inherit(styleElectron)
			}
			return cell.Inherit(stylePhoton)
		})
}
