package render

import "github.com/unkn0wn-root/walle/internal/canvas"

// namedHex holds the web value of every color without a tuned entry in
// DefaultPalette.
var namedHex = map[canvas.Color]string{
	canvas.AliceBlue:            "#f0f8ff",
	canvas.AntiqueWhite:         "#faebd7",
	canvas.Aqua:                 "#00ffff",
	canvas.Aquamarine:           "#7fffd4",
	canvas.Azure:                "#f0ffff",
	canvas.Beige:                "#f5f5dc",
	canvas.Bisque:               "#ffe4c4",
	canvas.BlanchedAlmond:       "#ffebcd",
	canvas.BlueViolet:           "#8a2be2",
	canvas.Brown:                "#a52a2a",
	canvas.BurlyWood:            "#deb887",
	canvas.CadetBlue:            "#5f9ea0",
	canvas.Chartreuse:           "#7fff00",
	canvas.Chocolate:            "#d2691e",
	canvas.Coral:                "#ff7f50",
	canvas.CornflowerBlue:       "#6495ed",
	canvas.Cornsilk:             "#fff8dc",
	canvas.Crimson:              "#dc143c",
	canvas.Cyan:                 "#00ffff",
	canvas.DarkBlue:             "#00008b",
	canvas.DarkCyan:             "#008b8b",
	canvas.DarkGoldenrod:        "#b8860b",
	canvas.DarkGray:             "#a9a9a9",
	canvas.DarkGreen:            "#006400",
	canvas.DarkKhaki:            "#bdb76b",
	canvas.DarkMagenta:          "#8b008b",
	canvas.DarkOliveGreen:       "#556b2f",
	canvas.DarkOrange:           "#ff8c00",
	canvas.DarkOrchid:           "#9932cc",
	canvas.DarkRed:              "#8b0000",
	canvas.DarkSalmon:           "#e9967a",
	canvas.DarkSeaGreen:         "#8fbc8f",
	canvas.DarkSlateBlue:        "#483d8b",
	canvas.DarkSlateGray:        "#2f4f4f",
	canvas.DarkTurquoise:        "#00ced1",
	canvas.DarkViolet:           "#9400d3",
	canvas.DeepPink:             "#ff1493",
	canvas.DeepSkyBlue:          "#00bfff",
	canvas.DimGray:              "#696969",
	canvas.DodgerBlue:           "#1e90ff",
	canvas.Firebrick:            "#b22222",
	canvas.FloralWhite:          "#fffaf0",
	canvas.ForestGreen:          "#228b22",
	canvas.Fuchsia:              "#ff00ff",
	canvas.Gainsboro:            "#dcdcdc",
	canvas.GhostWhite:           "#f8f8ff",
	canvas.Gold:                 "#ffd700",
	canvas.Goldenrod:            "#daa520",
	canvas.Gray:                 "#808080",
	canvas.GreenYellow:          "#adff2f",
	canvas.Honeydew:             "#f0fff0",
	canvas.HotPink:              "#ff69b4",
	canvas.IndianRed:            "#cd5c5c",
	canvas.Indigo:               "#4b0082",
	canvas.Ivory:                "#fffff0",
	canvas.Khaki:                "#f0e68c",
	canvas.Lavender:             "#e6e6fa",
	canvas.LavenderBlush:        "#fff0f5",
	canvas.LawnGreen:            "#7cfc00",
	canvas.LemonChiffon:         "#fffacd",
	canvas.LightBlue:            "#add8e6",
	canvas.LightCoral:           "#f08080",
	canvas.LightCyan:            "#e0ffff",
	canvas.LightGoldenrodYellow: "#fafad2",
	canvas.LightGray:            "#d3d3d3",
	canvas.LightGreen:           "#90ee90",
	canvas.LightPink:            "#ffb6c1",
	canvas.LightSalmon:          "#ffa07a",
	canvas.LightSeaGreen:        "#20b2aa",
	canvas.LightSkyBlue:         "#87cefa",
	canvas.LightSlateGray:       "#778899",
	canvas.LightSteelBlue:       "#b0c4de",
	canvas.LightYellow:          "#ffffe0",
	canvas.Lime:                 "#00ff00",
	canvas.LimeGreen:            "#32cd32",
	canvas.Linen:                "#faf0e6",
	canvas.Magenta:              "#ff00ff",
	canvas.Maroon:               "#800000",
	canvas.MediumAquamarine:     "#66cdaa",
	canvas.MediumBlue:           "#0000cd",
	canvas.MediumOrchid:         "#ba55d3",
	canvas.MediumPurple:         "#9370db",
	canvas.MediumSeaGreen:       "#3cb371",
	canvas.MediumSlateBlue:      "#7b68ee",
	canvas.MediumSpringGreen:    "#00fa9a",
	canvas.MediumTurquoise:      "#48d1cc",
	canvas.MediumVioletRed:      "#c71585",
	canvas.MidnightBlue:         "#191970",
	canvas.MintCream:            "#f5fffa",
	canvas.MistyRose:            "#ffe4e1",
	canvas.Moccasin:             "#ffe4b5",
	canvas.NavajoWhite:          "#ffdead",
	canvas.Navy:                 "#000080",
	canvas.OldLace:              "#fdf5e6",
	canvas.Olive:                "#808000",
	canvas.OliveDrab:            "#6b8e23",
	canvas.OrangeRed:            "#ff4500",
	canvas.Orchid:               "#da70d6",
	canvas.PaleGoldenrod:        "#eee8aa",
	canvas.PaleGreen:            "#98fb98",
	canvas.PaleTurquoise:        "#afeeee",
	canvas.PaleVioletRed:        "#db7093",
	canvas.PapayaWhip:           "#ffefd5",
	canvas.PeachPuff:            "#ffdab9",
	canvas.Peru:                 "#cd853f",
	canvas.Pink:                 "#ffc0cb",
	canvas.Plum:                 "#dda0dd",
	canvas.PowderBlue:           "#b0e0e6",
	canvas.RosyBrown:            "#bc8f8f",
	canvas.RoyalBlue:            "#4169e1",
	canvas.SaddleBrown:          "#8b4513",
	canvas.Salmon:               "#fa8072",
	canvas.SandyBrown:           "#f4a460",
	canvas.SeaGreen:             "#2e8b57",
	canvas.SeaShell:             "#fff5ee",
	canvas.Sienna:               "#a0522d",
	canvas.Silver:               "#c0c0c0",
	canvas.SkyBlue:              "#87ceeb",
	canvas.SlateBlue:            "#6a5acd",
	canvas.SlateGray:            "#708090",
	canvas.Snow:                 "#fffafa",
	canvas.SpringGreen:          "#00ff7f",
	canvas.SteelBlue:            "#4682b4",
	canvas.Tan:                  "#d2b48c",
	canvas.Teal:                 "#008080",
	canvas.Thistle:              "#d8bfd8",
	canvas.Tomato:               "#ff6347",
	canvas.Turquoise:            "#40e0d0",
	canvas.Violet:               "#ee82ee",
	canvas.Wheat:                "#f5deb3",
	canvas.WhiteSmoke:           "#f5f5f5",
	canvas.YellowGreen:          "#9acd32",
}
