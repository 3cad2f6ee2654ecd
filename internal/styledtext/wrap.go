package styledtext

import "github.com/rune-tui/rune/internal/uwidth"

// cluster is one extended grapheme cluster plus the attributes of the span
// it was cut from.
type cluster struct {
	text  string
	width int
	attrs TextAttributes
}

func clusterize(s StyledText) []cluster {
	var out []cluster
	for _, sp := range s.Spans {
		for _, c := range uwidth.Clusters(sp.Text) {
			out = append(out, cluster{text: c, width: uwidth.Cluster(c), attrs: sp.Attributes})
		}
	}
	return out
}

func build(clusters []cluster) StyledText {
	var spans []TextSpan
	for _, c := range clusters {
		if n := len(spans); n > 0 && spans[n-1].Attributes.Equal(c.attrs) {
			spans[n-1].Text += c.text
			continue
		}
		spans = append(spans, TextSpan{Text: c.text, Attributes: c.attrs})
	}
	return StyledText{Spans: spans}
}

// fits reports whether a cluster of the given width may be placed at the
// given running column offset under the width budget W.
//
// With lastColumnGuard set (the wrapping case), a cluster is only placed if
// it fits entirely within W — a width-2 cluster is never allowed to dangle
// past the boundary, since its second column would belong on the next line
// and clusters are never split. Without the guard (the truncate/split-point
// case, where there is no "next line" to carry an overflow column to), a
// cluster may be placed as long as there is at least one column of room
// left, even if that lets a width-2 cluster occupy one column past W — this
// is what lets truncateVisibleColumns's split point land mid-wide-cluster
// when the caller didn't ask for wrap-safety.
func fits(running, w, wBudget int, lastColumnGuard bool) bool {
	if lastColumnGuard {
		return running+w <= wBudget
	}
	return running < wBudget
}

// SplitByDisplayWidth splits styled text at display column at, returning the
// portion before the split point and the portion from it onward. Clusters
// are never broken across the two halves.
func SplitByDisplayWidth(s StyledText, at int, lastColumnGuard bool) (left, right StyledText) {
	clusters := clusterize(s)
	running := 0
	i := 0
	for ; i < len(clusters); i++ {
		c := clusters[i]
		if !fits(running, c.width, at, lastColumnGuard) {
			break
		}
		running += c.width
	}
	return build(clusters[:i]), build(clusters[i:])
}

// SliceByDisplayColumns returns the styled text visible in display columns
// [from, to), equivalent to splitting at from and then at to-from.
func SliceByDisplayColumns(s StyledText, from, to int) StyledText {
	_, after := SplitByDisplayWidth(s, from, false)
	mid, _ := SplitByDisplayWidth(after, to-from, false)
	return mid
}

// WrapByDisplayWidth repeatedly splits s at width W with the last-column
// guard enabled, so that every line's display width is at most W and no
// grapheme cluster is ever broken across lines. Rejoining the plain text of
// every returned line reproduces s.PlainText().
func WrapByDisplayWidth(s StyledText, width int) []StyledText {
	var lines []StyledText
	remaining := s
	for {
		if remaining.PlainText() == "" {
			break
		}
		left, right := SplitByDisplayWidth(remaining, width, true)
		if left.PlainText() == "" {
			// Width too small to place even one cluster; avoid an infinite
			// loop by forcing progress with exactly one cluster.
			clusters := clusterize(remaining)
			left = build(clusters[:1])
			right = build(clusters[1:])
		}
		lines = append(lines, left)
		remaining = right
	}
	if lines == nil {
		lines = []StyledText{{}}
	}
	return lines
}
