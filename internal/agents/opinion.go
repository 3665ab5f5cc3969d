package agents

import "fmt"

// Opinion score bounds.
const (
	MinOpinionScore = -10.0
	MaxOpinionScore = 10.0
)

// OpinionChange records one adjustment of an opinion.
type OpinionChange struct {
	Previous float64 `json:"previous_score"`
	New      float64 `json:"new_score"`
	Change   float64 `json:"change"` // Raw requested change, before clamping
	Reason   string  `json:"reason"`
}

// Opinion is what one client thinks of one shop.
type Opinion struct {
	ShopID  AgentID
	score   float64
	history []OpinionChange
}

// NewOpinion creates an opinion with the given starting score, clamped to
// the valid range.
func NewOpinion(shopID AgentID, initial float64) *Opinion {
	return &Opinion{ShopID: shopID, score: clampScore(initial)}
}

// AdjustScore moves the score by change, clamped to [-10, 10], and records
// the adjustment.
func (o *Opinion) AdjustScore(change float64, reason string) {
	prev := o.score
	o.score = clampScore(o.score + change)
	o.history = append(o.history, OpinionChange{
		Previous: prev,
		New:      o.score,
		Change:   change,
		Reason:   reason,
	})
}

// Score returns the current score.
func (o *Opinion) Score() float64 {
	return o.score
}

// History returns a copy of all recorded adjustments, oldest first.
func (o *Opinion) History() []OpinionChange {
	out := make([]OpinionChange, len(o.history))
	copy(out, o.history)
	return out
}

func (o *Opinion) String() string {
	return fmt.Sprintf("Opinion for Shop %d: %g", o.ShopID, o.score)
}

func clampScore(s float64) float64 {
	if s < MinOpinionScore {
		return MinOpinionScore
	}
	if s > MaxOpinionScore {
		return MaxOpinionScore
	}
	return s
}
