package export

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// RunWizard collects export options interactively. It is invoked when
// `vitae export` runs without flags; the passed options provide the
// defaults the form starts from.
func RunWizard(defaults Options) (Options, error) {
	opts := defaults

	formats := make([]Format, len(opts.Formats))
	copy(formats, opts.Formats)
	outDir := opts.OutDir
	title := opts.Title
	width := strconv.Itoa(opts.Width)
	height := strconv.Itoa(opts.Height)

	dimension := func(name string) func(string) error {
		return func(s string) error {
			v, err := strconv.Atoi(s)
			if err != nil || v <= 0 {
				return fmt.Errorf("%s must be a positive integer", name)
			}
			return nil
		}
	}

	form := newForm(
		huh.NewGroup(
			huh.NewMultiSelect[Format]().
				Title("Formats to export").
				Options(
					huh.NewOption("SVG snapshot", FormatSVG).Selected(has(formats, FormatSVG)),
					huh.NewOption("PNG snapshot", FormatPNG).Selected(has(formats, FormatPNG)),
					huh.NewOption("JSON graph data", FormatJSON).Selected(has(formats, FormatJSON)),
					huh.NewOption("SQLite database", FormatSQLite).Selected(has(formats, FormatSQLite)),
					huh.NewOption("Self-contained HTML page", FormatHTML).Selected(has(formats, FormatHTML)),
				).
				Value(&formats),
			huh.NewInput().
				Title("Output directory").
				Value(&outDir).
				Placeholder(defaults.OutDir),
			huh.NewInput().
				Title("Page title").
				Value(&title).
				Placeholder(defaults.Title),
			huh.NewInput().
				Title("Viewport width").
				Value(&width).
				Validate(dimension("width")),
			huh.NewInput().
				Title("Viewport height").
				Value(&height).
				Validate(dimension("height")),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	if len(formats) > 0 {
		opts.Formats = formats
	}
	if outDir != "" {
		opts.OutDir = outDir
	}
	if title != "" {
		opts.Title = title
	}
	opts.Width, _ = strconv.Atoi(width)
	opts.Height, _ = strconv.Atoi(height)

	return opts, nil
}

func has(formats []Format, f Format) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}
