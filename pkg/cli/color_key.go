package cli

import "github.com/charmbracelet/lipgloss"

type ColorKey int

// Colors
const (
	Black ColorKey = iota
	Gray300
	Gray500
	Gray900
	Green200
	Green700
	Red500
	Red700
	Sky300
	Sky500
	Sky700
	White
)

func (ck ColorKey) Hex() string {
	return map[ColorKey]string{
		Black:    "#000000",
		Gray300:  "#D4D4D4",
		Gray500:  "#737373",
		Gray900:  "#1C1C1C",
		Green200: "#B9F8CF",
		Green700: "#008236",
		Red500:   "#FB2C36",
		Red700:   "#C10007",
		Sky300:   "#74D4FF",
		Sky500:   "#00A6F4",
		Sky700:   "#0069A8",
		White:    "#FFFFFF",
	}[ck]
}

func (ck ColorKey) String() string {
	return map[ColorKey]string{
		Black:    "black",
		Gray300:  "gray300",
		Gray500:  "gray500",
		Gray900:  "gray900",
		Green200: "green200",
		Green700: "green700",
		Red500:   "red500",
		Red700:   "red700",
		Sky300:   "sky300",
		Sky500:   "sky500",
		Sky700:   "sky700",
		White:    "white",
	}[ck]
}

// LightDark picks light on light terminal backgrounds and dark otherwise.
func LightDark(light, dark ColorKey) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light.Hex(), Dark: dark.Hex()}
}
