package rsession

import "testing"

func TestChildConcatenatesWithTypeNameAndIdentity(t *testing.T) {
	got := Child(Root, "Box", "")
	if got != "Box" {
		t.Fatalf("got %q, want %q", got, "Box")
	}
	got = Child(got, "Text", "greeting")
	if got != "Box/Text#greeting" {
		t.Fatalf("got %q, want %q", got, "Box/Text#greeting")
	}
}

func TestChildWithoutExplicitIdentityOmitsHash(t *testing.T) {
	got := Child(Path("Box"), "Text", "")
	if got != "Box/Text" {
		t.Fatalf("got %q, want %q", got, "Box/Text")
	}
}

func TestHasSegmentMatchesTypeNameOrIdentity(t *testing.T) {
	p := Child(Child(Root, "Box", ""), "Text", "greeting")
	if !p.hasSegment("Box") {
		t.Fatalf("expected hasSegment(Box) true for %q", p)
	}
	if !p.hasSegment("greeting") {
		t.Fatalf("expected hasSegment(greeting) true for %q", p)
	}
	if p.hasSegment("Text") == false {
		t.Fatalf("expected hasSegment(Text) true for %q", p)
	}
	if p.hasSegment("missing") {
		t.Fatalf("expected hasSegment(missing) false for %q", p)
	}
}

func TestRootIdentityEqual(t *testing.T) {
	a := rootIdentity{typeName: "App", explicitIdentity: ""}
	b := rootIdentity{typeName: "App", explicitIdentity: ""}
	c := rootIdentity{typeName: "App", explicitIdentity: "v2"}
	if !a.equal(b) {
		t.Fatalf("expected a.equal(b)")
	}
	if a.equal(c) {
		t.Fatalf("expected !a.equal(c)")
	}
}
