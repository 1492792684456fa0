package engine

import "testing"

// TestCardPacking verifies type and value survive the round trip through the packed byte.
func TestCardPacking(t *testing.T) {
	for v := uint8(1); v <= 12; v++ {
		c := Numbered(v)
		if c.Type() != TypeNumbered {
			t.Errorf("Numbered(%d).Type: want NUMBERED, got %s", v, c.Type())
		}
		if c.Value() != v {
			t.Errorf("Numbered(%d).Value: want %d, got %d", v, v, c.Value())
		}
	}
	for _, ct := range []CardType{TypeStoolPigeon, TypeBamboozle, TypeVendetta, TypeKingpin, TypeRat, TypeMeatball} {
		c := NewCard(ct, 7)
		if c.Type() != ct {
			t.Errorf("NewCard(%s).Type: got %s", ct, c.Type())
		}
		if c.Value() != 0 {
			t.Errorf("NewCard(%s).Value: want 0, got %d", ct, c.Value())
		}
	}
	if EmptyCard.Type() != TypeNone || UnknownCard.Type() != TypeNone {
		t.Error("sentinels must report TypeNone")
	}
}

// TestCardIsAction verifies exactly the four action cards start effects.
func TestCardIsAction(t *testing.T) {
	want := map[CardType]bool{
		TypeNumbered:    false,
		TypeStoolPigeon: true,
		TypeBamboozle:   true,
		TypeVendetta:    true,
		TypeKingpin:     true,
		TypeRat:         false,
		TypeMeatball:    false,
	}
	for ct, w := range want {
		if got := NewCard(ct, 3).IsAction(); got != w {
			t.Errorf("%s.IsAction: want %v, got %v", ct, w, got)
		}
	}
	if EmptyCard.IsAction() {
		t.Error("EmptyCard.IsAction: want false")
	}
}

// TestCardScoreValue verifies per-type scoring.
func TestCardScoreValue(t *testing.T) {
	cases := []struct {
		card   Card
		ratRef int
		want   int
	}{
		{Numbered(7), 3, 7},
		{NewCard(TypeMeatball, 0), 9, 0},
		{NewCard(TypeRat, 0), 9, 9},
		{NewCard(TypeRat, 0), 0, 0},
		{NewCard(TypeKingpin, 0), 9, 0},
		{NewCard(TypeStoolPigeon, 0), 9, 0},
	}
	for _, tc := range cases {
		if got := tc.card.ScoreValue(tc.ratRef); got != tc.want {
			t.Errorf("%s.ScoreValue(%d): want %d, got %d", tc.card, tc.ratRef, tc.want, got)
		}
	}
}

// TestCardString verifies the short display names.
func TestCardString(t *testing.T) {
	cases := map[Card]string{
		Numbered(5):                 "5",
		Numbered(10):                "10",
		NewCard(TypeStoolPigeon, 0): "PIGEON",
		NewCard(TypeBamboozle, 0):   "BAMBOOZLE",
		NewCard(TypeRat, 0):         "RAT",
		EmptyCard:                   "--",
		UnknownCard:                 "??",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("String: want %q, got %q", want, got)
		}
	}
}

// TestPhaseNames verifies every phase has a name and effect phases are flagged.
func TestPhaseNames(t *testing.T) {
	for p := PhaseDraw; p <= PhaseGameOver; p++ {
		if p.String() == "" || p.String()[0] == 'P' {
			t.Errorf("phase %d has no name", p)
		}
	}
	effects := map[Phase]bool{
		PhaseStoolPigeonPeek: true, PhaseStoolPigeonSwap: true, PhaseBamboozleSelect: true,
		PhaseVendettaPeek: true, PhaseVendettaSwap: true, PhaseKingpinChoose: true,
		PhaseKingpinEliminate: true, PhaseKingpinAdd: true,
	}
	for p := PhaseDraw; p <= PhaseGameOver; p++ {
		if p.IsEffect() != effects[p] {
			t.Errorf("%s.IsEffect: want %v", p, effects[p])
		}
	}
}

// TestActionKindNames verifies every kind is named, so a new kind cannot be added silently.
func TestActionKindNames(t *testing.T) {
	if len(actionKindNames) != numActionKinds {
		t.Fatalf("actionKindNames: want %d entries, got %d", numActionKinds, len(actionKindNames))
	}
	for k := ActionKind(0); k < numActionKinds; k++ {
		if actionKindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

// TestSwapNormalized verifies Swap is order-insensitive.
func TestSwapNormalized(t *testing.T) {
	a, b := SlotRef{1, 2}, SlotRef{0, 3}
	if Swap(a, b) != Swap(b, a) {
		t.Fatal("Swap(a, b) != Swap(b, a)")
	}
	s := Swap(a, b)
	if s.Target != b || s.Second != a {
		t.Errorf("Swap order: want %s then %s, got %s then %s", b, a, s.Target, s.Second)
	}
}

// TestActionNormalizeIgnoresUnusedFields verifies stray payload does not affect legality.
func TestActionNormalizeIgnoresUnusedFields(t *testing.T) {
	a := Action{Kind: ActDiscard, Target: SlotRef{1, 1}, Second: SlotRef{0, 2}}
	if a.normalize() != Discard() {
		t.Errorf("normalize: want %v, got %v", Discard(), a.normalize())
	}
	k := Action{Kind: ActKingpinAdd, Target: SlotRef{1, 3}}
	if k.normalize() != KingpinAdd(1) {
		t.Errorf("normalize: want %v, got %v", KingpinAdd(1), k.normalize())
	}
}

// TestActionString verifies the compact textual form.
func TestActionString(t *testing.T) {
	cases := map[Action]string{
		DrawPile():                         "draw-pile",
		Keep(0, 2):                         "keep 0:2",
		Peek(SlotRef{1, 0}):                "peek 1:0",
		Swap(SlotRef{1, 1}, SlotRef{0, 3}): "swap 0:3 1:1",
		KingpinAdd(1):                      "add 1",
		SkipEffect():                       "skip",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Errorf("String: want %q, got %q", want, got)
		}
	}
}
