// Package plan is the single source of truth for plan tiers, their prices and the features they unlock.
package plan

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Plan is a canonical tier identifier.
type Plan string

const (
	Free     Plan = "FREE"
	Crush    Plan = "CRUSH49"
	Romance  Plan = "ROM99"
	Ultimate Plan = "ULT199"
)

// Feature is a capability gated by plan.
type Feature string

const (
	FeatureProposal  Feature = "proposal"
	FeatureMemories  Feature = "memories"
	FeatureTemplates Feature = "templates"
	FeatureQuiz      Feature = "quiz"
	FeatureCalc      Feature = "calc"
	FeatureGame      Feature = "game"
	FeatureShare     Feature = "share"
	FeatureVoice     Feature = "voice"
	FeatureHD        Feature = "hd"
)

// UnlimitedMemories is the memory cap reported for paid tiers.
const UnlimitedMemories = 9999

// Currency of every purchasable amount.
const Currency = "BDT"

// Limits are the quantitative allowances of a tier.
type Limits struct {
	Memories int  `json:"memories"`
	Voice    bool `json:"voice"`
	HD       bool `json:"hd"`
}

// Descriptor is the public description of a tier.
type Descriptor struct {
	Plan        Plan      `json:"plan"`
	Price       *string   `json:"price,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Purchasable bool      `json:"purchasable"`
	Features    []Feature `json:"features"`
	Limits      Limits    `json:"limits"`
}

type tier struct {
	features []Feature
	limits   Limits
	amount   decimal.Decimal
	paid     bool
}

var ordered = []Plan{Free, Crush, Romance, Ultimate}

var allFeatures = []Feature{
	FeatureProposal, FeatureMemories, FeatureTemplates, FeatureQuiz,
	FeatureCalc, FeatureGame, FeatureShare, FeatureVoice, FeatureHD,
}

var tiers = map[Plan]tier{
	Free: {
		features: []Feature{FeatureProposal, FeatureMemories},
		limits:   Limits{Memories: 5},
	},
	Crush: {
		features: []Feature{FeatureProposal, FeatureShare, FeatureMemories},
		limits:   Limits{Memories: 10},
	},
	Romance: {
		features: []Feature{
			FeatureProposal, FeatureTemplates, FeatureQuiz, FeatureCalc,
			FeatureGame, FeatureShare, FeatureMemories, FeatureVoice,
		},
		limits: Limits{Memories: UnlimitedMemories, Voice: true},
		amount: decimal.NewFromInt(99),
		paid:   true,
	},
	Ultimate: {
		features: allFeatures,
		limits:   Limits{Memories: UnlimitedMemories, Voice: true, HD: true},
		amount:   decimal.NewFromInt(199),
		paid:     true,
	},
}

// Normalize maps any input onto a known tier; unknown or empty values become FREE.
func Normalize(raw string) Plan {
	p := Plan(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := tiers[p]; ok {
		return p
	}
	return Free
}

// Parse is like Normalize but reports whether raw named a known tier.
func Parse(raw string) (Plan, bool) {
	p := Plan(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := tiers[p]
	return p, ok
}

// Has reports whether the plan unlocks the feature. ULT199 has everything.
func Has(p Plan, f Feature) bool {
	p = Normalize(string(p))
	if p == Ultimate {
		return true
	}
	for _, candidate := range tiers[p].features {
		if candidate == f {
			return true
		}
	}
	return false
}

func LimitsFor(p Plan) Limits {
	return tiers[Normalize(string(p))].limits
}

// IsPaid reports whether p is one of the self-service tiers bought through the unlock flow.
func IsPaid(p Plan) bool {
	return tiers[Normalize(string(p))].paid
}

// Amount returns the price of a purchasable tier.
func Amount(p Plan) (decimal.Decimal, bool) {
	t, ok := tiers[p]
	if !ok || !t.paid {
		return decimal.Zero, false
	}
	return t.amount, true
}

// Features returns a copy of the feature list for p.
func Features(p Plan) []Feature {
	src := tiers[Normalize(string(p))].features
	out := make([]Feature, len(src))
	copy(out, src)
	return out
}

// All describes every tier in ascending order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(ordered))
	for _, p := range ordered {
		d := Descriptor{
			Plan:     p,
			Features: Features(p),
			Limits:   LimitsFor(p),
		}
		if amount, ok := Amount(p); ok {
			price := amount.StringFixed(2)
			d.Price = &price
			d.Currency = Currency
			d.Purchasable = true
		}
		out = append(out, d)
	}
	return out
}
