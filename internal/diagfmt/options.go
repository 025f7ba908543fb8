package diagfmt

// PrettyOpts управляет человекочитаемым выводом диагностик.
type PrettyOpts struct {
	// Color включает ANSI-раскраску (fatih/color сам учитывает NO_COLOR).
	Color bool
	// Context - сколько строк исходника показать вокруг основной.
	Context int
	// ShowNotes печатает прикреплённые заметки под диагностикой.
	ShowNotes bool
}

// DefaultPrettyOpts returns the options used by the CLI for TTY output.
func DefaultPrettyOpts() PrettyOpts {
	return PrettyOpts{
		Color:     true,
		Context:   0,
		ShowNotes: true,
	}
}
