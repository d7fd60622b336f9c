package types

type Signal string

const (
	// SignalBuy tells the engine to open a long position at the next bar's open
	SignalBuy Signal = "buy"
	// SignalSell tells the engine to close the long position at the next bar's open
	SignalSell Signal = "sell"
	// SignalHold tells the engine to take no action
	SignalHold Signal = "hold"
)

// IsValid reports whether s is one of the three defined signals.
func (s Signal) IsValid() bool {
	switch s {
	case SignalBuy, SignalSell, SignalHold:
		return true
	default:
		return false
	}
}

func (s Signal) String() string {
	return string(s)
}
