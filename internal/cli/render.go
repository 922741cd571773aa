package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// printer writes markdown either rendered for the terminal or as-is.
type printer struct {
	out      io.Writer
	renderer *glamour.TermRenderer
}

func newPrinter(out io.Writer, raw bool) *printer {
	p := &printer{out: out}
	if raw {
		return p
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		p.renderer = r
	}
	return p
}

func (p *printer) markdown(md string) {
	if p.renderer != nil {
		if rendered, err := p.renderer.Render(md); err == nil {
			fmt.Fprint(p.out, rendered)
			return
		}
	}
	fmt.Fprintln(p.out, md)
}

func (p *printer) result(result *domain.FeatureResult) {
	p.markdown(result.Session.Content)
	if len(result.Cards) > 0 {
		p.markdown(cardsTable(result.Cards))
	}
}

func (p *printer) history(sessions []domain.StudySession) {
	if len(sessions) == 0 {
		fmt.Fprintln(p.out, "No study history yet. Start studying to see your history!")
		return
	}
	var b strings.Builder
	for _, s := range sessions {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Title(), s.Content)
	}
	p.markdown(b.String())
}

func cardsTable(cards []domain.Flashcard) string {
	var b strings.Builder
	b.WriteString("| # | Question | Answer |\n|---|---|---|\n")
	for i, card := range cards {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, cell(card.Front), cell(card.Back))
	}
	return b.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
