package models

import "math/big"

// AVAX has 18 decimals like ether.
const PriceDecimals = 18

type Tier struct {
	ID    string
	Name  string
	Price *big.Int
}

var tiers = []Tier{
	{ID: "tier1", Name: "Tier 1", Price: avax(10)},
	{ID: "tier2", Name: "Tier 2", Price: avax(15)},
	{ID: "tier3", Name: "Tier 3", Price: avax(20)},
	{ID: "tier4", Name: "Tier 4", Price: avax(35)},
}

func avax(n int64) *big.Int {
	wei := new(big.Int).Exp(big.NewInt(10), big.NewInt(PriceDecimals), nil)
	return wei.Mul(wei, big.NewInt(n))
}

// Tiers returns a copy of the fixed tier table in ascending price order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	for i, t := range tiers {
		out[i] = Tier{ID: t.ID, Name: t.Name, Price: new(big.Int).Set(t.Price)}
	}
	return out
}

func IsValidTier(id string) bool {
	for _, t := range tiers {
		if t.ID == id {
			return true
		}
	}
	return false
}
