package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-lvglgen/pkg/schema"
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("failures reported")

type styles struct {
	fail lipgloss.Style
	ok   lipgloss.Style
	path lipgloss.Style
	dim  lipgloss.Style
}

// newStyles binds the styles to w so colour is only emitted on terminals.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		fail: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		ok:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		path: r.NewStyle().Foreground(lipgloss.Color("12")),
		dim:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// issues returns the path-aware failures inside err, or nil when err carries
// none.
func issues(err error) []*schema.Error {
	var list schema.Errors
	var single *schema.Error
	if errors.As(err, &list) || errors.As(err, &single) {
		return schema.Flatten(err)
	}
	return nil
}

func reportFailure(w io.Writer, location string, err error) {
	s := newStyles(w)
	title := "error"
	if location != "" {
		title = location
	}
	found := issues(err)
	if len(found) == 0 {
		fmt.Fprintf(w, "%s %v\n", s.fail.Render("✗ "+title), err)
		return
	}
	noun := "problems"
	if len(found) == 1 {
		noun = "problem"
	}
	fmt.Fprintf(w, "%s %s\n", s.fail.Render("✗ "+title), s.dim.Render(fmt.Sprintf("%d %s", len(found), noun)))
	for _, issue := range found {
		path := issue.PathString()
		if path == "" {
			path = "(document)"
		}
		fmt.Fprintf(w, "  %s %s\n", s.path.Render(path), issue.Message)
	}
}

func reportSuccess(w io.Writer, location, detail string) {
	s := newStyles(w)
	fmt.Fprintf(w, "%s %s\n", s.ok.Render("✓ "+location), s.dim.Render(detail))
}
