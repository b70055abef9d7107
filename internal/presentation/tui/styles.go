package tui

import (
	"github.com/muesli/termenv"
)

// Styles colours user-facing messages for one colour profile.
type Styles struct {
	profile termenv.Profile
}

// NewStyles detects the terminal colour profile.
func NewStyles() Styles {
	return Styles{profile: termenv.ColorProfile()}
}

// PlainStyles never emits escape sequences.
func PlainStyles() Styles {
	return Styles{profile: termenv.Ascii}
}

func (s Styles) Error(msg string) string {
	return s.profile.String("Error: " + msg).Foreground(s.profile.Color("#f87171")).String()
}

func (s Styles) Info(msg string) string {
	return s.profile.String(msg).Foreground(s.profile.Color("#4ade80")).String()
}

func (s Styles) Header(name string) string {
	return s.profile.String("── " + name + " ──").Foreground(s.profile.Color("#a78bfa")).Bold().String()
}

func (s Styles) Prompt(label string) string {
	return s.profile.String(label + ": ").Foreground(s.profile.Color("#818cf8")).String()
}
