package resource

// Wallet is the standard Grantor: per-kind balances with optional caps.
// A wallet belongs to a single run and is not shared between goroutines.
type Wallet struct {
	balance [kindCount]int
	cap     [kindCount]int
}

// NewWallet builds a wallet with the given starting balances. Caps bound
// what Earn can accumulate; a zero or missing cap means uncapped.
func NewWallet(initial, caps map[Kind]int) *Wallet {
	w := &Wallet{}
	for k, n := range initial {
		w.balance[k] = n
	}
	for k, n := range caps {
		w.cap[k] = n
	}
	return w
}

// Grant consumes one assist if the balance allows it.
func (w *Wallet) Grant(k Kind) bool {
	if w.balance[k] < 1 {
		return false
	}
	w.balance[k]--
	return true
}

// Balance reports the remaining assists of the kind.
func (w *Wallet) Balance(k Kind) int {
	return w.balance[k]
}

// Earn credits n assists, clamped to the wallet's cap for the kind.
func (w *Wallet) Earn(k Kind, n int) {
	if n < 1 {
		return
	}
	w.balance[k] += n
	if w.cap[k] > 0 && w.balance[k] > w.cap[k] {
		w.balance[k] = w.cap[k]
	}
}

// Unlimited grants every request. Used by practice mode.
type Unlimited struct{}

// Grant always succeeds.
func (Unlimited) Grant(Kind) bool {
	return true
}

// Balance reports -1, meaning unlimited.
func (Unlimited) Balance(Kind) int {
	return -1
}

// Earn is a no-op; an unlimited budget has nothing to credit.
func (Unlimited) Earn(Kind, int) {}
