// Package settlement turns a group's shared expenses into net balances and
// the debtor to creditor payments that clear them.
//
// The package is pure: it performs no I/O, keeps no state between calls and is
// safe for concurrent use. Amounts keep full decimal precision internally and
// are rounded to cents only at the output boundary.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance below which a balance is treated as settled.
var Epsilon = decimal.New(1, -2)

const displayPlaces = 2

// Expense is a single shared payment.
type Expense struct {
	Amount    decimal.Decimal
	Payer     string
	SplitWith []string // empty means every member of the group
}

// NetBalance is a member's position after all expenses.
// Positive Net means the group owes the member, negative means the member owes the group.
type NetBalance struct {
	Member string
	Net    decimal.Decimal
	// Unknown is set for identifiers referenced by expenses but missing from the member list.
	Unknown bool
}

// Rounded returns Net rounded to cents.
func (b NetBalance) Rounded() decimal.Decimal {
	return b.Net.Round(displayPlaces)
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// Summary is the result of ComputeBalances.
type Summary struct {
	Balances   []NetBalance
	TotalSpent decimal.Decimal
}

// Sheet is the full settlement result for a group.
type Sheet struct {
	Balances   []NetBalance
	Transfers  []Transfer
	TotalSpent decimal.Decimal
}

// ParseAmount converts a stored amount to a decimal.
// Malformed, empty and negative input yields zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// ComputeBalances credits every payer with the full amount of their expenses and
// debits an equal share to each member the expense is split with.
// A group without members has nothing to settle.
func ComputeBalances(members []string, expenses []Expense) Summary {
	members = unique(members)
	if len(members) == 0 {
		return Summary{Balances: []NetBalance{}, TotalSpent: decimal.Zero}
	}

	net := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		net[m] = decimal.Zero
	}

	total := decimal.Zero

	for _, e := range expenses {
		amount := e.Amount
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		group := unique(e.SplitWith)
		if len(group) == 0 {
			group = members
		}

		share := amount.Div(decimal.NewFromInt(int64(len(group))))

		total = total.Add(amount)
		net[e.Payer] = net[e.Payer].Add(amount)

		for _, m := range group {
			net[m] = net[m].Sub(share)
		}
	}

	balances := make([]NetBalance, 0, len(net))
	for _, m := range members {
		balances = append(balances, NetBalance{Member: m, Net: net[m]})
		delete(net, m)
	}

	unknown := make([]string, 0, len(net))
	for m := range net {
		unknown = append(unknown, m)
	}

	sort.Strings(unknown)

	for _, m := range unknown {
		balances = append(balances, NetBalance{Member: m, Net: net[m], Unknown: true})
	}

	return Summary{Balances: balances, TotalSpent: total}
}

type party struct {
	member    string
	remaining decimal.Decimal // always positive
}

// ComputeTransfers greedily matches the largest creditor with the largest debtor
// until every balance is within Epsilon of zero.
//
// The result has at most len(creditors)+len(debtors)-1 entries for balanced input.
// It is not guaranteed to be the minimum possible number of payments.
func ComputeTransfers(balances []NetBalance) []Transfer {
	var creditors, debtors []party

	for _, b := range balances {
		switch {
		case b.Net.GreaterThan(Epsilon):
			creditors = append(creditors, party{member: b.Member, remaining: b.Net})
		case b.Net.LessThan(Epsilon.Neg()):
			debtors = append(debtors, party{member: b.Member, remaining: b.Net.Neg()})
		}
	}

	byLargest := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool {
			if c := ps[i].remaining.Cmp(ps[j].remaining); c != 0 {
				return c > 0
			}
			return ps[i].member < ps[j].member
		}
	}

	sort.Slice(creditors, byLargest(creditors))
	sort.Slice(debtors, byLargest(debtors))

	transfers := []Transfer{}

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := decimal.Min(d.remaining, c.remaining)
		transfers = append(transfers, Transfer{
			From:   d.member,
			To:     c.member,
			Amount: amount.Round(displayPlaces),
		})

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)

		if !d.remaining.GreaterThan(Epsilon) {
			i++
		}
		if !c.remaining.GreaterThan(Epsilon) {
			j++
		}
	}

	// Leftovers only exist when the input does not sum to zero.
	// They are settled against the largest party on the other side.
	if len(debtors) > 0 {
		for ; j < len(creditors); j++ {
			transfers = appendResidual(transfers, debtors[0].member, creditors[j].member, creditors[j].remaining)
		}
	}

	if len(creditors) > 0 {
		for ; i < len(debtors); i++ {
			transfers = appendResidual(transfers, debtors[i].member, creditors[0].member, debtors[i].remaining)
		}
	}

	return transfers
}

func appendResidual(transfers []Transfer, from, to string, residual decimal.Decimal) []Transfer {
	if !residual.GreaterThan(Epsilon) {
		return transfers
	}

	return append(transfers, Transfer{From: from, To: to, Amount: residual.Round(displayPlaces)})
}

// Settle computes balances and the transfers that clear them.
func Settle(members []string, expenses []Expense) Sheet {
	summary := ComputeBalances(members, expenses)

	return Sheet{
		Balances:   summary.Balances,
		Transfers:  ComputeTransfers(summary.Balances),
		TotalSpent: summary.TotalSpent,
	}
}

func unique(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
