package canvas

import "strings"

type Color uint8

// Transparent is the no-paint sentinel: painting with it leaves cells
// untouched. The eight basic colors come first and the remaining named
// colors follow alphabetically.
const (
	Transparent Color = iota
	White
	Black
	Red
	Green
	Blue
	Yellow
	Orange
	Purple
	AliceBlue
	AntiqueWhite
	Aqua
	Aquamarine
	Azure
	Beige
	Bisque
	BlanchedAlmond
	BlueViolet
	Brown
	BurlyWood
	CadetBlue
	Chartreuse
	Chocolate
	Coral
	CornflowerBlue
	Cornsilk
	Crimson
	Cyan
	DarkBlue
	DarkCyan
	DarkGoldenrod
	DarkGray
	DarkGreen
	DarkKhaki
	DarkMagenta
	DarkOliveGreen
	DarkOrange
	DarkOrchid
	DarkRed
	DarkSalmon
	DarkSeaGreen
	DarkSlateBlue
	DarkSlateGray
	DarkTurquoise
	DarkViolet
	DeepPink
	DeepSkyBlue
	DimGray
	DodgerBlue
	Firebrick
	FloralWhite
	ForestGreen
	Fuchsia
	Gainsboro
	GhostWhite
	Gold
	Goldenrod
	Gray
	GreenYellow
	Honeydew
	HotPink
	IndianRed
	Indigo
	Ivory
	Khaki
	Lavender
	LavenderBlush
	LawnGreen
	LemonChiffon
	LightBlue
	LightCoral
	LightCyan
	LightGoldenrodYellow
	LightGray
	LightGreen
	LightPink
	LightSalmon
	LightSeaGreen
	LightSkyBlue
	LightSlateGray
	LightSteelBlue
	LightYellow
	Lime
	LimeGreen
	Linen
	Magenta
	Maroon
	MediumAquamarine
	MediumBlue
	MediumOrchid
	MediumPurple
	MediumSeaGreen
	MediumSlateBlue
	MediumSpringGreen
	MediumTurquoise
	MediumVioletRed
	MidnightBlue
	MintCream
	MistyRose
	Moccasin
	NavajoWhite
	Navy
	OldLace
	Olive
	OliveDrab
	OrangeRed
	Orchid
	PaleGoldenrod
	PaleGreen
	PaleTurquoise
	PaleVioletRed
	PapayaWhip
	PeachPuff
	Peru
	Pink
	Plum
	PowderBlue
	RosyBrown
	RoyalBlue
	SaddleBrown
	Salmon
	SandyBrown
	SeaGreen
	SeaShell
	Sienna
	Silver
	SkyBlue
	SlateBlue
	SlateGray
	Snow
	SpringGreen
	SteelBlue
	Tan
	Teal
	Thistle
	Tomato
	Turquoise
	Violet
	Wheat
	WhiteSmoke
	YellowGreen
)

var colorNames = [...]string{
	Transparent:          "Transparent",
	White:                "White",
	Black:                "Black",
	Red:                  "Red",
	Green:                "Green",
	Blue:                 "Blue",
	Yellow:               "Yellow",
	Orange:               "Orange",
	Purple:               "Purple",
	AliceBlue:            "AliceBlue",
	AntiqueWhite:         "AntiqueWhite",
	Aqua:                 "Aqua",
	Aquamarine:           "Aquamarine",
	Azure:                "Azure",
	Beige:                "Beige",
	Bisque:               "Bisque",
	BlanchedAlmond:       "BlanchedAlmond",
	BlueViolet:           "BlueViolet",
	Brown:                "Brown",
	BurlyWood:            "BurlyWood",
	CadetBlue:            "CadetBlue",
	Chartreuse:           "Chartreuse",
	Chocolate:            "Chocolate",
	Coral:                "Coral",
	CornflowerBlue:       "CornflowerBlue",
	Cornsilk:             "Cornsilk",
	Crimson:              "Crimson",
	Cyan:                 "Cyan",
	DarkBlue:             "DarkBlue",
	DarkCyan:             "DarkCyan",
	DarkGoldenrod:        "DarkGoldenrod",
	DarkGray:             "DarkGray",
	DarkGreen:            "DarkGreen",
	DarkKhaki:            "DarkKhaki",
	DarkMagenta:          "DarkMagenta",
	DarkOliveGreen:       "DarkOliveGreen",
	DarkOrange:           "DarkOrange",
	DarkOrchid:           "DarkOrchid",
	DarkRed:              "DarkRed",
	DarkSalmon:           "DarkSalmon",
	DarkSeaGreen:         "DarkSeaGreen",
	DarkSlateBlue:        "DarkSlateBlue",
	DarkSlateGray:        "DarkSlateGray",
	DarkTurquoise:        "DarkTurquoise",
	DarkViolet:           "DarkViolet",
	DeepPink:             "DeepPink",
	DeepSkyBlue:          "DeepSkyBlue",
	DimGray:              "DimGray",
	DodgerBlue:           "DodgerBlue",
	Firebrick:            "Firebrick",
	FloralWhite:          "FloralWhite",
	ForestGreen:          "ForestGreen",
	Fuchsia:              "Fuchsia",
	Gainsboro:            "Gainsboro",
	GhostWhite:           "GhostWhite",
	Gold:                 "Gold",
	Goldenrod:            "Goldenrod",
	Gray:                 "Gray",
	GreenYellow:          "GreenYellow",
	Honeydew:             "Honeydew",
	HotPink:              "HotPink",
	IndianRed:            "IndianRed",
	Indigo:               "Indigo",
	Ivory:                "Ivory",
	Khaki:                "Khaki",
	Lavender:             "Lavender",
	LavenderBlush:        "LavenderBlush",
	LawnGreen:            "LawnGreen",
	LemonChiffon:         "LemonChiffon",
	LightBlue:            "LightBlue",
	LightCoral:           "LightCoral",
	LightCyan:            "LightCyan",
	LightGoldenrodYellow: "LightGoldenrodYellow",
	LightGray:            "LightGray",
	LightGreen:           "LightGreen",
	LightPink:            "LightPink",
	LightSalmon:          "LightSalmon",
	LightSeaGreen:        "LightSeaGreen",
	LightSkyBlue:         "LightSkyBlue",
	LightSlateGray:       "LightSlateGray",
	LightSteelBlue:       "LightSteelBlue",
	LightYellow:          "LightYellow",
	Lime:                 "Lime",
	LimeGreen:            "LimeGreen",
	Linen:                "Linen",
	Magenta:              "Magenta",
	Maroon:               "Maroon",
	MediumAquamarine:     "MediumAquamarine",
	MediumBlue:           "MediumBlue",
	MediumOrchid:         "MediumOrchid",
	MediumPurple:         "MediumPurple",
	MediumSeaGreen:       "MediumSeaGreen",
	MediumSlateBlue:      "MediumSlateBlue",
	MediumSpringGreen:    "MediumSpringGreen",
	MediumTurquoise:      "MediumTurquoise",
	MediumVioletRed:      "MediumVioletRed",
	MidnightBlue:         "MidnightBlue",
	MintCream:            "MintCream",
	MistyRose:            "MistyRose",
	Moccasin:             "Moccasin",
	NavajoWhite:          "NavajoWhite",
	Navy:                 "Navy",
	OldLace:              "OldLace",
	Olive:                "Olive",
	OliveDrab:            "OliveDrab",
	OrangeRed:            "OrangeRed",
	Orchid:               "Orchid",
	PaleGoldenrod:        "PaleGoldenrod",
	PaleGreen:            "PaleGreen",
	PaleTurquoise:        "PaleTurquoise",
	PaleVioletRed:        "PaleVioletRed",
	PapayaWhip:           "PapayaWhip",
	PeachPuff:            "PeachPuff",
	Peru:                 "Peru",
	Pink:                 "Pink",
	Plum:                 "Plum",
	PowderBlue:           "PowderBlue",
	RosyBrown:            "RosyBrown",
	RoyalBlue:            "RoyalBlue",
	SaddleBrown:          "SaddleBrown",
	Salmon:               "Salmon",
	SandyBrown:           "SandyBrown",
	SeaGreen:             "SeaGreen",
	SeaShell:             "SeaShell",
	Sienna:               "Sienna",
	Silver:               "Silver",
	SkyBlue:              "SkyBlue",
	SlateBlue:            "SlateBlue",
	SlateGray:            "SlateGray",
	Snow:                 "Snow",
	SpringGreen:          "SpringGreen",
	SteelBlue:            "SteelBlue",
	Tan:                  "Tan",
	Teal:                 "Teal",
	Thistle:              "Thistle",
	Tomato:               "Tomato",
	Turquoise:            "Turquoise",
	Violet:               "Violet",
	Wheat:                "Wheat",
	WhiteSmoke:           "WhiteSmoke",
	YellowGreen:          "YellowGreen",
}

var colorIndex = func() map[string]Color {
	m := make(map[string]Color, len(colorNames))
	for i, name := range colorNames {
		m[strings.ToLower(name)] = Color(i)
	}
	return m
}()

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "Unknown"
}

// Basic reports whether c is one of the eight basic colors.
func (c Color) Basic() bool {
	return c >= White && c <= Purple
}

// ParseColor matches name against the palette, ignoring case.
func ParseColor(name string) (Color, bool) {
	c, ok := colorIndex[strings.ToLower(name)]
	return c, ok
}

// Palette returns every color in declaration order, sentinel first.
func Palette() []Color {
	out := make([]Color, len(colorNames))
	for i := range colorNames {
		out[i] = Color(i)
	}
	return out
}
