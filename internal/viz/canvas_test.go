package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != blank|0x80 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank {
		t.Errorf("expected blank, got %U", c.Grid[0][0])
	}

	c.Set(-1, 0)
	c.Set(100, 0)
	c.Put(100, 0, 'x')
}

func TestCanvas_GlyphOverlay(t *testing.T) {
	c := NewCanvas(3, 1)
	c.DrawLine(0, 0, 5, 0)
	c.Put(2, 1, '@')

	got := c.String()
	if !strings.ContainsRune(got, '@') {
		t.Fatalf("glyph missing from %q", got)
	}
	if []rune(got)[1] != '@' {
		t.Errorf("expected glyph in the middle cell, got %q", got)
	}

	styled := c.Render(func(s ...string) string { return "[" + strings.Join(s, "") + "]" }, func(s ...string) string { return "<" + strings.Join(s, "") + ">" })
	if !strings.Contains(styled, "<@>") {
		t.Errorf("expected styled glyph, got %q", styled)
	}
	if strings.Count(styled, "[") != 2 {
		t.Errorf("expected two dot runs around the glyph, got %q", styled)
	}

	c.Clear()
	if strings.ContainsRune(c.String(), '@') {
		t.Error("clear should drop glyphs")
	}
}

func TestCanvas_DrawRect(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawRect(0, 0, 7, 7)
	for _, p := range [][2]int{{0, 0}, {7, 0}, {0, 7}, {7, 7}, {3, 0}, {0, 4}} {
		col, row := p[0]/2, p[1]/4
		bit := rune(pixelMap[p[1]%4][p[0]%2])
		if c.Grid[row][col]&bit == 0 {
			t.Errorf("expected dot at %v", p)
		}
	}
	if c.Grid[0][1]&rune(pixelMap[2][0]) != 0 {
		t.Error("rect interior should be empty")
	}
}

func TestCanvas_RenderWithLipglossStyles(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0)
	c.Put(2, 1, '@')

	dots := lipgloss.NewStyle()
	glyph := lipgloss.NewStyle().Bold(true)
	got := c.Render(dots.Render, glyph.Render)
	if !strings.ContainsRune(got, '@') {
		t.Errorf("glyph missing from %q", got)
	}
	if !strings.ContainsRune(got, blank|0x1) {
		t.Errorf("dot missing from %q", got)
	}
}
