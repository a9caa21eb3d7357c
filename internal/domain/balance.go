package domain

// MemberBalance is a member's net position in a group.
// Positive Net means the group owes the member.
type MemberBalance struct {
	Member  string `json:"member"`
	Net     string `json:"net"`
	Unknown bool   `json:"unknown,omitempty"`
}

// TransferSuggestion is a payment that moves the group toward settlement.
type TransferSuggestion struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// GroupBalances is the settlement sheet of a group.
type GroupBalances struct {
	GroupID    int64                `json:"group_id"`
	Currency   string               `json:"currency"`
	TotalSpent string               `json:"total_spent"`
	Balances   []MemberBalance      `json:"balances"`
	Transfers  []TransferSuggestion `json:"transfers"`
}

// UserBalance is one member's view of the group settlement sheet.
type UserBalance struct {
	GroupID  int64                `json:"group_id"`
	Username string               `json:"username"`
	Currency string               `json:"currency"`
	Net      string               `json:"net"`
	Owes     []TransferSuggestion `json:"owes"`
	Owed     []TransferSuggestion `json:"owed"`
}
