package stockapi

// SignalsResponse is the body of GET /stock/:id/signals.
type SignalsResponse struct {
	Data []SignalItem `json:"data"`
}

// SignalItem reports one detected move and the follow-up change after
// one month, three months and half a year.
type SignalItem struct {
	Date        string   `json:"Date"`
	OneMonth    Movement `json:"One Month"`
	ThreeMonths Movement `json:"Three Months"`
	HalfYear    Movement `json:"Half Year"`
}

// Movement holds exactly one of Rise or Drop as a percentage string such as
// "6.25%" or "5.0%", or neither when the horizon is past the end of the history.
type Movement struct {
	Rise string `json:"Rise,omitempty"`
	Drop string `json:"Drop,omitempty"`
}
