package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/litebase/blockfs/pkg/cli"
)

var TextColor = cli.LightDark(cli.Black, cli.White)
var MutedTextColor = cli.LightDark(cli.Gray500, cli.Gray300)

var TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.LightDark(cli.Sky700, cli.Sky300))

var KeyStyle = lipgloss.NewStyle().Foreground(MutedTextColor).PaddingRight(2)
var ValueStyle = lipgloss.NewStyle().Foreground(TextColor)

var HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.LightDark(cli.Sky700, cli.Sky500)).PaddingRight(2)
var CellStyle = lipgloss.NewStyle().Foreground(TextColor).PaddingRight(2)

var alertStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var AlertSuccessStyle = alertStyle.
	Background(cli.LightDark(cli.Green700, cli.Green200)).
	Foreground(cli.LightDark(cli.White, cli.Black))

var AlertDangerStyle = alertStyle.
	Background(cli.LightDark(cli.Red700, cli.Red500)).
	Foreground(cli.LightDark(cli.White, cli.White))
