package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/tabpad/internal/config"
	"github.com/xonecas/tabpad/internal/highlight"
	"github.com/xonecas/tabpad/internal/tui/editor"
	"github.com/xonecas/tabpad/internal/tui/menu"
	"github.com/xonecas/tabpad/internal/tui/modal"
)

// styles are the chrome styles derived from the theme palette.
type styles struct {
	BgFill      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabModified lipgloss.Style
	StatusText  lipgloss.Style
	StatusInfo  lipgloss.Style
	Error       lipgloss.Style
	Recording   lipgloss.Style
}

func newStyles(p highlight.Palette) styles {
	bg := lipgloss.Color(p.Bg)
	return styles{
		BgFill:      lipgloss.NewStyle().Background(bg),
		TabActive:   lipgloss.NewStyle().Background(lipgloss.Color(p.CurrentLine)).Foreground(lipgloss.Color(p.Fg)).Bold(true),
		TabInactive: lipgloss.NewStyle().Background(lipgloss.Color(p.Gutter)).Foreground(lipgloss.Color(p.Muted)),
		TabModified: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		StatusText:  lipgloss.NewStyle().Background(lipgloss.Color(p.Gutter)).Foreground(lipgloss.Color(p.Dim)),
		StatusInfo:  lipgloss.NewStyle().Background(lipgloss.Color(p.Gutter)).Foreground(lipgloss.Color(p.Fg)),
		Error:       lipgloss.NewStyle().Background(lipgloss.Color(p.Gutter)).Foreground(lipgloss.Color(p.Error)),
		Recording:   lipgloss.NewStyle().Background(lipgloss.Color(p.Gutter)).Foreground(lipgloss.Color(p.Error)).Bold(true),
	}
}

func modalColors(p highlight.Palette) modal.Colors {
	return modal.Colors{
		Fg:     p.Fg,
		Bg:     p.Bg,
		Dim:    p.Dim,
		SelFg:  p.Bg,
		SelBg:  p.Fg,
		Border: p.Border,
	}
}

func menuColors(p highlight.Palette) menu.Colors {
	return menu.Colors{
		Fg:     p.Fg,
		Bg:     p.Gutter,
		Dim:    p.Dim,
		SelFg:  p.Bg,
		SelBg:  p.Accent,
		Border: p.Border,
	}
}

func editorColors(p highlight.Palette, ui config.UIConfig) editor.Colors {
	current := p.CurrentLine
	if ui.CurrentLineColor != "" {
		current = ui.CurrentLineColor
	}
	return editor.Colors{
		Fg:            p.Fg,
		Bg:            p.Bg,
		GutterFg:      p.Dim,
		GutterBg:      p.Gutter,
		GutterCurrent: p.Fg,
		CurrentLine:   current,
		SelectionBg:   p.Border,
		SelectionFg:   p.Fg,
	}
}
