package uwidth

import "testing"

func TestRuneWidth(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want int
	}{
		{"ascii", 'A', 1},
		{"tab", '\t', 1},
		{"c0 control", 0x01, 0},
		{"combining acute", 0x0301, 0},
		{"zwj", 0x200D, 0},
		{"variation selector", 0xFE0F, 0},
		{"cjk wide", '世', 2},
		{"emoji presentation", 0x1F600, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Rune(c.r); got != c.want {
				t.Errorf("Rune(%U) = %d, want %d", c.r, got, c.want)
			}
		})
	}
}

func TestClusterWidth(t *testing.T) {
	cases := []struct {
		name    string
		cluster string
		want    int
	}{
		{"ascii letter", "A", 1},
		{"cjk", "世", 2},
		{"family emoji zwj", "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466", 2},
		{"regional indicator pair", "\U0001F1FA\U0001F1F8", 2},
		{"base plus combining", "é", 1},
		{"only zero width", "‍", 0},
		{"skin tone modifier", "\U0001F44B\U0001F3FB", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Cluster(c.cluster); got != c.want {
				t.Errorf("Cluster(%q) = %d, want %d", c.cluster, got, c.want)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	cases := []struct {
		name string
		s    string
		want int
	}{
		{"plain ascii", "Test", 4},
		{"test with wide suffix", "Test世", 6},
		{"zwj family plus neighbors", "A\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466B", 4},
		{"empty", "", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := String(c.s); got != c.want {
				t.Errorf("String(%q) = %d, want %d", c.s, got, c.want)
			}
		})
	}
}

func TestClustersSplitsFamilyAsOneCluster(t *testing.T) {
	s := "A\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466B"
	clusters := Clusters(s)
	if len(clusters) != 3 {
		t.Fatalf("Clusters(%q) = %v, want 3 clusters", s, clusters)
	}
	if clusters[0] != "A" || clusters[2] != "B" {
		t.Fatalf("unexpected cluster split: %v", clusters)
	}
}
