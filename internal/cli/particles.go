package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/particle"
)

// particlesCommand creates the particles command.
func (c *CLI) particlesCommand() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "particles",
		Short: "List the particle catalogue and interactions",
		Long: `List every particle kind with its antiparticle, family and spin, followed by
the interactions vertices can be built from. Only electrons, positrons and
photons take part in diagrams today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := filterKinds(group)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, particleTable(kinds).Render())
			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Interactions"))
			for _, in := range []particle.Interaction{particle.Electromagnetic} {
				fmt.Fprintf(w, "  %s  %s\n", StyleValue.Render(in.String()), StyleDim.Render(joinKinds(in.Legs())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only list one family: quark, lepton or gauge-boson")

	return cmd
}

// filterKinds returns the catalogue, restricted to one group when name is set.
func filterKinds(name string) ([]particle.Kind, error) {
	all := particle.All()
	if name == "" {
		return all, nil
	}
	want := strings.ReplaceAll(name, "-", " ")
	var kinds []particle.Kind
	for _, k := range all {
		if strings.EqualFold(k.Group().String(), want) {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("unknown particle group %q", name)
	}
	return kinds, nil
}

func particleTable(kinds []particle.Kind) *table.Table {
	rows := make([][]string, len(kinds))
	for i, k := range kinds {
		anti := particle.Anti(k).String()
		if particle.IsSelfConjugate(k) {
			anti = "(self)"
		}
		rows[i] = []string{k.String(), anti, k.Group().String(), k.Spin().String()}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Particle", "Antiparticle", "Group", "Spin").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return base.Inherit(styleHeader)
			}
			if col == 0 && inQED(kinds[row]) {
				return base.Inherit(styleElectron)
			}
			if col == 0 {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorGray)
		})
}

// inQED reports whether k can appear in a diagram.
func inQED(k particle.Kind) bool {
	for _, l := range particle.Electromagnetic.Legs() {
		if l == k {
			return true
		}
	}
	return false
}

func joinKinds(kinds []particle.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " · ")
}
