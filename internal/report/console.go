// Package report renders the scan event stream for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/crossfleet/rds-inventory/internal/aws"
)

var (
	accountStyle = lipgloss.NewStyle().Bold(true)
	regionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	retryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Console streams scan events to a writer as they occur.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) RegionDiscovered(region string) {
	fmt.Fprintf(c.w, "%s %s\n", dimStyle.Render("region"), regionStyle.Render(region))
}

func (c *Console) AccountStarted(account aws.Account) {
	fmt.Fprintf(c.w, "\n%s\n", accountStyle.Render(fmt.Sprintf("=== %s (%s)", account.Name, account.ID)))
}

func (c *Console) AccountAssumeFailed(account aws.Account, err error) {
	fmt.Fprintf(c.w, "  %s %s: %v\n",
		failStyle.Render("assume-role failed"), account.ID, err)
}

func (c *Console) ResourceFound(account aws.Account, region string, r aws.DBResource) {
	kind := "instance"
	if r.Cluster {
		kind = "cluster"
	}
	fmt.Fprintf(c.w, "  %s  %s  %s %s (%s, %s)\n",
		regionStyle.Render(region), okStyle.Render(r.Identifier),
		dimStyle.Render(kind), r.Engine, r.EngineVersion, r.Status)
}

func (c *Console) RegionEmpty(account aws.Account, region string) {
	fmt.Fprintf(c.w, "  %s  %s\n", regionStyle.Render(region), dimStyle.Render("no databases"))
}

func (c *Console) RegionFailed(account aws.Account, region string, err error) {
	fmt.Fprintf(c.w, "  %s  %s: %v\n", regionStyle.Render(region), failStyle.Render("failed"), err)
}

func (c *Console) RetryScheduled(account aws.Account, region string) {
	fmt.Fprintf(c.w, "  %s  %s\n", regionStyle.Render(region),
		retryStyle.Render("deferred to regional-endpoint pass"))
}

func (c *Console) RetrySucceeded(account aws.Account, region string, resources int) {
	fmt.Fprintf(c.w, "  %s  %s (%d databases)\n", regionStyle.Render(region),
		okStyle.Render(fmt.Sprintf("regional retry succeeded for %s", account.ID)), resources)
}

func (c *Console) RetryFailed(account aws.Account, region string, err error) {
	fmt.Fprintf(c.w, "  %s  %s: %v\n", regionStyle.Render(region),
		failStyle.Render(fmt.Sprintf("regional retry failed for %s", account.ID)), err)
}
