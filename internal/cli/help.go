package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00")).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFAF00")).
				MarginTop(1)

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter returns a kong help printer with lipgloss styling. It
// describes the selected command, or the application when none is selected.
func StyledHelpPrinter(title, description string) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Model.Node
		if selected := ctx.Selected(); selected != nil {
			node = selected
		}

		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render(title))
		sb.WriteString("\n")
		if help := nodeHelp(node, description); help != "" {
			sb.WriteString(helpDescStyle.Render(help))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(usageLine(node))
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			writeSection(&sb, "Commands:", cmds, helpCommandStyle)
		}

		if args := arguments(node); len(args) > 0 {
			writeSection(&sb, "Arguments:", args, helpArgStyle)
		}

		writeSection(&sb, "Flags:", flags(node), helpFlagStyle)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

func writeSection(sb *strings.Builder, heading string, entries []helpEntry, style lipgloss.Style) {
	width := 0
	for _, e := range entries {
		width = max(width, lipgloss.Width(e.name))
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(heading))
	sb.WriteString("\n")

	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))
		if e.help != "" {
			sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(e.name)+2))
			sb.WriteString(e.help)
		}
		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func nodeHelp(node *kong.Node, fallback string) string {
	if node.Type == kong.CommandNode && node.Help != "" {
		return node.Help
	}

	return fallback
}

func usageLine(node *kong.Node) string {
	var path []string
	for n := node; n != nil; n = n.Parent {
		path = append([]string{n.Name}, path...)
	}

	line := strings.Join(path, " ")
	if len(commands(node)) > 0 {
		line += " <command>"
	}
	line += " [flags]"
	for _, arg := range node.Positional {
		line += " " + arg.Summary()
	}

	return line
}

func commands(node *kong.Node) []helpEntry {
	var cmds []helpEntry

	for _, child := range node.Children {
		if child.Hidden {
			continue
		}

		cmds = append(cmds, helpEntry{name: child.Name, help: child.Help})
	}

	return cmds
}

func arguments(node *kong.Node) []helpEntry {
	var args []helpEntry

	for _, arg := range node.Positional {
		args = append(args, helpEntry{name: arg.Summary(), help: arg.Help})
	}

	return args
}

// flags lists the node's flags followed by those inherited from its parents.
func flags(node *kong.Node) []helpEntry {
	entries := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for n := node; n != nil; n = n.Parent {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue
			}

			name := fmt.Sprintf("--%s", f.Name)
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}

			if !f.IsBool() {
				name += "=" + strings.ToUpper(f.FormatPlaceHolder())
			}

			entries = append(entries, helpEntry{
				name:       name,
				help:       f.Help,
				defaultVal: f.Default,
			})
		}
	}

	return entries
}
