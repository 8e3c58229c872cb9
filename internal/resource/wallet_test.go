package resource

import "testing"

func TestWalletGrantUntilEmpty(t *testing.T) {
	w := NewWallet(map[Kind]int{Hint: 2, Slice: 1}, nil)

	for i := 0; i < 2; i++ {
		if !w.Grant(Hint) {
			t.Fatalf("Grant(Hint) #%d = false, expected true", i+1)
		}
	}
	if w.Grant(Hint) {
		t.Error("Grant(Hint) on empty balance = true, expected false")
	}
	if got := w.Balance(Hint); got != 0 {
		t.Errorf("Balance(Hint) = %d, expected 0", got)
	}

	// The slice balance is untouched by hint grants.
	if got := w.Balance(Slice); got != 1 {
		t.Errorf("Balance(Slice) = %d, expected 1", got)
	}
}

func TestWalletEarnRespectsCap(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		cap      int
		earn     int
		expected int
	}{
		{"uncapped", 1, 0, 10, 11},
		{"under cap", 1, 5, 2, 3},
		{"clamped to cap", 4, 5, 3, 5},
		{"zero earn ignored", 2, 5, 0, 2},
		{"negative earn ignored", 2, 5, -3, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWallet(map[Kind]int{Hint: tc.initial}, map[Kind]int{Hint: tc.cap})
			w.Earn(Hint, tc.earn)
			if got := w.Balance(Hint); got != tc.expected {
				t.Errorf("Balance(Hint) = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestUnlimited(t *testing.T) {
	var g Grantor = Unlimited{}

	for i := 0; i < 100; i++ {
		if !g.Grant(Slice) {
			t.Fatal("Unlimited.Grant = false, expected true")
		}
	}
	if got := g.Balance(Hint); got >= 0 {
		t.Errorf("Unlimited.Balance = %d, expected negative", got)
	}
}
