package entity

// Ticker is the result of resolving a user supplied identifier
// (ticker symbol or company name) to a listed instrument.
type Ticker struct {
	Symbol string
	Name   string
}

// DisplayName renders the ticker as "Name (SYMBOL)".
func (t Ticker) DisplayName() string {
	return t.Name + " (" + t.Symbol + ")"
}
