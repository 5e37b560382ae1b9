package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	ErrorFg     tcell.Color
	HeadingFg   tcell.Color
	QuoteFg     tcell.Color
	LinkFg      tcell.Color
	ImageFg     tcell.Color
	RuleFg      tcell.Color
	CodeFg      tcell.Color
	CodeBlockBg tcell.Color
	CodeBlockFg tcell.Color
	MatchBg     tcell.Color
	MatchFg     tcell.Color
	FocusBg     tcell.Color
	FocusFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		StatusBg:    tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		HeadingFg:   tcell.Color33,
		QuoteFg:     tcell.ColorLightSlateGray,
		LinkFg:      tcell.Color51,
		ImageFg:     tcell.Color141,
		RuleFg:      tcell.ColorLightSlateGray,
		CodeFg:      tcell.Color44,  // brighter cyan text for code
		CodeBlockBg: tcell.Color234, // darker grey background for fenced code
		CodeBlockFg: tcell.Color252, // light grey text for fenced code
		MatchBg:     tcell.Color136,
		MatchFg:     tcell.ColorBlack,
		FocusBg:     tcell.Color208,
		FocusFg:     tcell.ColorBlack,
	}
}
