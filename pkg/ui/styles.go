package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#161F32"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#243049"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#8A6212", Dark: "#C28F2C"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - For split view layouts
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderTagBadge returns a tag pill in the tag's catalog color.
func RenderTagBadge(r *lipgloss.Renderer, catalog *tags.Catalog, tag string) string {
	label := tag
	hex := tags.FallbackColor
	if catalog != nil {
		label = catalog.Label(tag)
		hex = catalog.Hex(tag)
	}
	return r.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ThemeBg(hex)).
		Padding(0, 1).
		Render(label)
}

// RenderTagBadges joins badges for every tag, separated by a space.
func RenderTagBadges(r *lipgloss.Renderer, catalog *tags.Catalog, tagIDs []string) string {
	parts := make([]string, 0, len(tagIDs))
	for _, t := range tagIDs {
		parts = append(parts, RenderTagBadge(r, catalog, t))
	}
	return strings.Join(parts, " ")
}

// RenderTagDot returns a single colored bullet for compact rows.
func RenderTagDot(r *lipgloss.Renderer, catalog *tags.Catalog, tag string) string {
	hex := tags.FallbackColor
	if catalog != nil {
		hex = catalog.Hex(tag)
	}
	return r.NewStyle().Foreground(ThemeFg(hex)).Render("●")
}

// RenderProgress draws a discovery progress bar such as "▰▰▰▱▱ 3/5".
func RenderProgress(t Theme, done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := done * width / total
	if done > 0 && filled == 0 {
		filled = 1
	}
	bar := t.Renderer.NewStyle().Foreground(t.Accent).Render(strings.Repeat("▰", filled)) +
		t.MutedText.Render(strings.Repeat("▱", width-filled))
	return bar + t.MutedText.Render(" "+itoa(done)+"/"+itoa(total))
}
