package colorprofile

import "testing"

func TestResolveRGBReturnsSelf(t *testing.T) {
	p := New()
	got := p.Resolve(DynColor{Kind: TrueColor, RGB: RGB24{1, 2, 3}}, RGB24{9, 9, 9})
	if got != (RGB24{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveIndexedLooksUpPalette(t *testing.T) {
	p := New()
	p.SetPaletteEntry(5, RGB24{10, 20, 30})
	got := p.Resolve(DynColor{Kind: Indexed, Index: 5}, RGB24{})
	if got != (RGB24{10, 20, 30}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveSpecialAndNotSetFallBackToDefault(t *testing.T) {
	p := New()
	def := RGB24{7, 7, 7}
	if got := p.Resolve(DynColor{Kind: Special}, def); got != def {
		t.Fatalf("special: got %v want %v", got, def)
	}
	if got := p.Resolve(DynColor{Kind: NotSet}, def); got != def {
		t.Fatalf("not-set: got %v want %v", got, def)
	}
}

func TestPushPopColorsRestoresPalette(t *testing.T) {
	p := New()
	before := p.PaletteEntry(1)
	p.PushColors()
	p.SetPaletteEntry(1, RGB24{255, 255, 255})
	if p.PaletteEntry(1) == before {
		t.Fatal("palette mutation did not take effect")
	}
	p.PopColors()
	if p.PaletteEntry(1) != before {
		t.Fatal("pop did not restore prior palette")
	}
}

func TestColorStackBoundedFIFO(t *testing.T) {
	p := New()
	for i := 0; i < maxColorStackDepth+5; i++ {
		p.PushColors()
	}
	if len(p.stack) != maxColorStackDepth {
		t.Fatalf("stack depth = %d, want bounded at %d", len(p.stack), maxColorStackDepth)
	}
}

func TestParseColorSpecHex(t *testing.T) {
	got, ok := ParseColorSpec("#ff8000")
	if !ok {
		t.Fatal("expected hex spec to parse")
	}
	if got != (RGB24{0xff, 0x80, 0x00}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseColorSpecX11RGB(t *testing.T) {
	got, ok := ParseColorSpec("rgb:ff/80/00")
	if !ok {
		t.Fatal("expected rgb: spec to parse")
	}
	if got != (RGB24{0xff, 0x80, 0x00}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseColorSpecInvalid(t *testing.T) {
	if _, ok := ParseColorSpec("not-a-color"); ok {
		t.Fatal("expected invalid spec to fail")
	}
}

func TestOrigPaletteSurvivesResetAfterMutation(t *testing.T) {
	p := New()
	orig := p.PaletteEntry(2)
	p.SetPaletteEntry(2, RGB24{1, 1, 1})
	p.ResetPalette()
	if p.PaletteEntry(2) != orig {
		t.Fatal("ResetPalette should restore the original startup palette")
	}
}
