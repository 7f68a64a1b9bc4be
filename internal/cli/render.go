package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// PrintBanner outputs the player banner. Callers gate it on TTY output.
func PrintBanner(out io.Writer) {
	p := termenv.ColorProfile()
	lines := []termenv.Style{
		termenv.String(`                     _            `).Foreground(p.Color("#818cf8")),
		termenv.String(`  _ __   __ _ _ __ | | ___ _   _  `).Foreground(p.Color("#a78bfa")),
		termenv.String(` | '_ \ / _' | '__|| |/ _ \ | | | `).Foreground(p.Color("#c084fc")),
		termenv.String(` | |_) | (_| | |   | |  __/ |_| | `).Foreground(p.Color("#e879f9")),
		termenv.String(` | .__/ \__,_|_|   |_|\___|\__, | `).Foreground(p.Color("#f472b6")),
		termenv.String(` |_|                       |___/  `).Foreground(p.Color("#fb7185")),
	}

	fmt.Fprintln(out)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintln(out)
}

// Renderer formats dialogue lines for the terminal. On a TTY it renders
// text through glamour and colors character names with termenv; otherwise
// everything is plain.
type Renderer struct {
	tty      bool
	markdown *glamour.TermRenderer
	profile  termenv.Profile
}

// NewRenderer creates a renderer. Pass tty=false for piped output.
func NewRenderer(tty bool) *Renderer {
	r := &Renderer{tty: tty}
	if tty {
		r.profile = termenv.ColorProfile()
		r.markdown, _ = glamour.NewTermRenderer(glamour.WithAutoStyle())
	}
	return r
}

// Dialogue formats one spoken line.
func (r *Renderer) Dialogue(character, text string) string {
	if !r.tty {
		if character == "" {
			return text
		}
		return character + ": " + text
	}

	var b strings.Builder
	if character != "" {
		name := termenv.String(character).Foreground(r.profile.Color("#a78bfa")).Bold()
		b.WriteString(name.String())
		b.WriteString("\n")
	}
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(text); err == nil {
			b.WriteString(strings.TrimRight(rendered, "\n"))
			return b.String()
		}
	}
	b.WriteString(text)
	return b.String()
}

// Option formats one numbered response menu entry.
func (r *Renderer) Option(n int, prompt string) string {
	if !r.tty {
		return fmt.Sprintf("  %d) %s", n, prompt)
	}
	num := termenv.String(fmt.Sprintf("%d)", n)).Foreground(r.profile.Color("#f472b6"))
	return fmt.Sprintf("  %s %s", num, prompt)
}
