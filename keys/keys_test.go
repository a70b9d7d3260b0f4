package keys

import "testing"

func TestNamed(t *testing.T) {
	cases := []struct {
		name string
		want Key
	}{
		{name: "Return", want: Key{Code: CodeReturn}},
		{name: "ctrl+c", want: Key{Label: "c", Mods: ModCtrl}},
		{name: "ctrl+shift+Left", want: Key{Code: CodeLeft, Mods: ModCtrl | ModShift}},
		{name: "space", want: Key{Code: CodeSpace, Label: " "}},
		{name: ".", want: Key{Label: "."}},
		{name: "+", want: Key{Label: "+"}},
		{name: "hyper+x", want: Key{Label: "hyper+x"}},
	}
	for _, tc := range cases {
		if got := Named(tc.name); got != tc.want {
			t.Fatalf("Named(%q)=%+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestKey_Predicates(t *testing.T) {
	if !Text("a").IsText() {
		t.Fatalf("letter should be text")
	}
	if Named("ctrl+c").IsText() {
		t.Fatalf("ctrl+c should not be text")
	}
	if !Named("ctrl+C").IsCtrl("c") {
		t.Fatalf("ctrl+C should match IsCtrl(c)")
	}
	if !Named("KP_Enter").IsEnter() {
		t.Fatalf("keypad enter should be enter")
	}
}
