package styledtext

// TextAttributes holds an optional foreground/background color and a set of
// boolean style flags. The zero value is the default (unstyled) attribute
// set; IsDefault reports that directly rather than comparing field-by-field
// at every call site.
type TextAttributes struct {
	Foreground *Color
	Background *Color

	Bold          bool
	Italic        bool
	Underline     bool
	Inverse       bool
	Strikethrough bool
	Dim           bool
}

// IsDefault reports whether every field is unset/false.
func (a TextAttributes) IsDefault() bool {
	return a.Foreground == nil && a.Background == nil &&
		!a.Bold && !a.Italic && !a.Underline && !a.Inverse && !a.Strikethrough && !a.Dim
}

// Equal reports field-wise equality, comparing color pointers by value.
func (a TextAttributes) Equal(o TextAttributes) bool {
	if !colorPtrEqual(a.Foreground, o.Foreground) || !colorPtrEqual(a.Background, o.Background) {
		return false
	}
	return a.Bold == o.Bold && a.Italic == o.Italic && a.Underline == o.Underline &&
		a.Inverse == o.Inverse && a.Strikethrough == o.Strikethrough && a.Dim == o.Dim
}

func colorPtrEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// WithForeground returns a copy of a with the foreground color set.
func (a TextAttributes) WithForeground(c Color) TextAttributes {
	a.Foreground = &c
	return a
}

// WithBackground returns a copy of a with the background color set.
func (a TextAttributes) WithBackground(c Color) TextAttributes {
	a.Background = &c
	return a
}
