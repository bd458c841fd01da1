package ui

import "github.com/gdamore/tcell/v2"

// Theme holds the widget palette
type Theme struct {
	Bg      tcell.Color
	CardBg  tcell.Color
	Fg      tcell.Color
	Dim     tcell.Color
	Border  tcell.Color
	Accent  tcell.Color
	Warn    tcell.Color
	Good    tcell.Color
	Alert   tcell.Color
	FieldBg tcell.Color
	LabelBg tcell.Color
	FocusFg tcell.Color
	FocusBg tcell.Color
	FooterBg tcell.Color
}

// DefaultTheme returns the dark palette
func DefaultTheme() Theme {
	return Theme{
		Bg:       tcell.NewRGBColor(20, 20, 30),
		CardBg:   tcell.NewRGBColor(25, 25, 35),
		Fg:       tcell.NewRGBColor(200, 200, 200),
		Dim:      tcell.NewRGBColor(100, 100, 100),
		Border:   tcell.NewRGBColor(80, 100, 140),
		Accent:   tcell.NewRGBColor(100, 200, 220),
		Warn:     tcell.NewRGBColor(255, 180, 100),
		Good:     tcell.NewRGBColor(80, 200, 80),
		Alert:    tcell.NewRGBColor(230, 80, 80),
		FieldBg:  tcell.NewRGBColor(40, 40, 55),
		LabelBg:  tcell.NewRGBColor(50, 50, 60),
		FocusFg:  tcell.NewRGBColor(255, 255, 255),
		FocusBg:  tcell.NewRGBColor(60, 80, 120),
		FooterBg: tcell.NewRGBColor(40, 50, 70),
	}
}

func (t Theme) style(fg, bg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}
