package parser

import "testing"

func TestWithStateRestores(t *testing.T) {
	p := NewParser([]byte(""))
	p.State.NameMap["x"] = TextRange{Start: 1, End: 2}
	before := p.State.Clone()

	restore := p.WithState(func(s *ParserState) {
		s.Strict = &StrictMode{Explicit: true}
		s.InFunction = true
		s.AmbientDepth = 2
		s.NameMap["y"] = TextRange{}
	})
	if p.State.Equal(before) {
		t.Fatalf("state should have changed")
	}
	restore()
	if !p.State.Equal(before) {
		t.Errorf("got %+v, want %+v", p.State, before)
	}
	if _, ok := p.State.NameMap["y"]; ok {
		t.Errorf("name map changes leaked through the restore")
	}
}

func TestEnterBindingList(t *testing.T) {
	p := NewParser([]byte(""))
	p.State.NameMap["outer"] = TextRange{}

	restore := p.EnterBindingList("const")
	if p.State.DuplicateBindingParent != "const" {
		t.Errorf("got %q, want const", p.State.DuplicateBindingParent)
	}
	if len(p.State.NameMap) != 0 {
		t.Errorf("binding list should start with an empty name map")
	}
	p.State.NameMap["inner"] = TextRange{}
	restore()

	if p.State.DuplicateBindingParent != "" {
		t.Errorf("duplicate binding parent not restored")
	}
	if _, ok := p.State.NameMap["outer"]; !ok {
		t.Errorf("outer name map not restored")
	}
	if _, ok := p.State.NameMap["inner"]; ok {
		t.Errorf("inner name leaked")
	}
}

func TestStateCloneEqual(t *testing.T) {
	s := NewParserState()
	s.Strict = &StrictMode{Directive: TextRange{Start: 0, End: 12}, Explicit: true}
	s.NameMap["a"] = TextRange{Start: 4, End: 5}

	c := s.Clone()
	if !s.Equal(c) {
		t.Fatalf("clone should equal the original")
	}
	c.Strict.Explicit = false
	c.NameMap["b"] = TextRange{}
	if !s.Strict.Explicit || len(s.NameMap) != 1 {
		t.Errorf("clone shares memory with the original")
	}
	if s.Equal(c) {
		t.Errorf("modified clone should differ")
	}

	tests := []struct {
		name   string
		change func(*ParserState)
	}{
		{"strict", func(s *ParserState) { s.Strict = nil }},
		{"ambient", func(s *ParserState) { s.AmbientDepth++ }},
		{"parent", func(s *ParserState) { s.DuplicateBindingParent = "let" }},
		{"object", func(s *ParserState) { s.AllowObjectExpr = !s.AllowObjectExpr }},
		{"async", func(s *ParserState) { s.InAsync = true }},
		{"names", func(s *ParserState) { delete(s.NameMap, "a") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := s.Clone()
			tt.change(&c)
			if s.Equal(c) {
				t.Errorf("change to %s not detected", tt.name)
			}
		})
	}
}

func TestFeatureSupport(t *testing.T) {
	tests := []struct {
		kind       FileKind
		strict     bool
		module     bool
		typescript bool
	}{
		{FileKindScript, false, false, false},
		{FileKindModule, true, true, false},
		{FileKindTypeScript, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := NewParser(nil, WithFileKind(tt.kind))
			if got := FeatureStrictMode.IsSupported(p); got != tt.strict {
				t.Errorf("strict: got %v, want %v", got, tt.strict)
			}
			if got := FeatureModule.IsSupported(p); got != tt.module {
				t.Errorf("module: got %v, want %v", got, tt.module)
			}
			if got := FeatureTypeScript.IsSupported(p); got != tt.typescript {
				t.Errorf("typescript: got %v, want %v", got, tt.typescript)
			}
		})
	}

	p := NewParser(nil, WithFileKind(FileKindScript), WithStrict())
	if !FeatureStrictMode.IsSupported(p) {
		t.Errorf("WithStrict should enable strict mode in scripts")
	}
}

func TestFileKindFor(t *testing.T) {
	tests := []struct {
		path string
		kind FileKind
	}{
		{"a.js", FileKindModule},
		{"a.mjs", FileKindModule},
		{"a.cjs", FileKindScript},
		{"a.ts", FileKindTypeScript},
		{"dir/a.D.TS", FileKindTypeScript},
		{"a.tsx", FileKindTypeScript},
		{"README", FileKindModule},
	}
	for _, tt := range tests {
		if got := FileKindFor(tt.path); got != tt.kind {
			t.Errorf("FileKindFor(%q) = %v, want %v", tt.path, got, tt.kind)
		}
	}
	if k, ok := ParseFileKind("TS"); !ok || k != FileKindTypeScript {
		t.Errorf("ParseFileKind(TS) = %v, %v", k, ok)
	}
	if _, ok := ParseFileKind("python"); ok {
		t.Errorf("ParseFileKind accepted an unknown kind")
	}
}
