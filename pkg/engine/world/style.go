package world

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownStyle is returned when a style tag is not one of the nine known shapes
var ErrUnknownStyle = errors.New("unknown cell style")

// Style is the shape tag of a cell. The empty Style means "no tag".
type Style string

// The nine shape tags. diag and round variants cut one corner each.
const (
	StyleNone   Style = ""
	StyleFull   Style = "full"
	StyleDiag1  Style = "diag1"
	StyleDiag2  Style = "diag2"
	StyleDiag3  Style = "diag3"
	StyleDiag4  Style = "diag4"
	StyleRound1 Style = "round1"
	StyleRound2 Style = "round2"
	StyleRound3 Style = "round3"
	StyleRound4 Style = "round4"
)

// styleCycle is the fixed order used by NextStyle
var styleCycle = []Style{
	StyleFull,
	StyleDiag1, StyleDiag2, StyleDiag3, StyleDiag4,
	StyleRound1, StyleRound2, StyleRound3, StyleRound4,
}

// AllStyles returns the nine shape tags in cycle order
func AllStyles() []Style {
	out := make([]Style, len(styleCycle))
	copy(out, styleCycle)
	return out
}

// IsValid reports whether s is one of the nine shape tags
func (s Style) IsValid() bool {
	for _, c := range styleCycle {
		if c == s {
			return true
		}
	}
	return false
}

// IsShaped is true for the diag and round variants
func (s Style) IsShaped() bool {
	return s.IsValid() && s != StyleFull
}

// ParseStyle validates a style tag. The empty string parses to StyleNone.
func ParseStyle(tag string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(tag)))
	if s == StyleNone || s.IsValid() {
		return s, nil
	}
	return StyleNone, fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
}

// NextStyle returns the style after s in the fixed cycle, wrapping.
// An untagged or unknown style advances from full.
func NextStyle(s Style) Style {
	for i, c := range styleCycle {
		if c == s {
			return styleCycle[(i+1)%len(styleCycle)]
		}
	}
	return styleCycle[1]
}

// Point is an integer cell coordinate
type Point struct {
	X int
	Y int
}

// String formats the point as the "x,y" key used by dungeon owners
func (p Point) String() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// ParsePoint parses an "x,y" key
func ParsePoint(key string) (Point, error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return Point{}, fmt.Errorf("cell key %q: want \"x,y\"", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("cell key %q: %w", key, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("cell key %q: %w", key, err)
	}
	return Point{X: x, Y: y}, nil
}

// StyleMap holds the optional per-cell shape tags
type StyleMap map[Point]Style

// At returns the tag stored for x/y, or StyleNone
func (m StyleMap) At(x, y int) Style {
	if m == nil {
		return StyleNone
	}
	return m[Point{X: x, Y: y}]
}

// Effective resolves the style that governs coverage at x/y: the stored tag
// if any, full for an untagged occupied cell, and StyleNone otherwise.
func (m StyleMap) Effective(g *Grid, x, y int) Style {
	if !g.IsOccupied(x, y) {
		return StyleNone
	}
	if s := m.At(x, y); s.IsValid() {
		return s
	}
	return StyleFull
}
