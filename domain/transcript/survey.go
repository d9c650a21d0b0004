package transcript

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Ratings are the post-negotiation Likert items, each on a 1-7 scale.
type Ratings struct {
	Dominance         int `json:"dominance"`
	Pressure          int `json:"pressure"`
	Fairness          int `json:"fairness"`
	Satisfaction      int `json:"satisfaction"`
	Trust             int `json:"trust"`
	Expertise         int `json:"expertise"`
	Recommend         int `json:"recommend"`
	ManipulationPower int `json:"manipulation_power"`
}

// Survey is the optional buyer-submitted questionnaire, written at most
// once per session.
type Survey struct {
	Timestamp  time.Time             `json:"timestamp"`
	SessionID  string                `json:"session_id"`
	Mode       negotiation.Mode      `json:"mode"`
	FinalPrice int                   `json:"final_price"`
	EndedBy    negotiation.EndReason `json:"ended_by"`
	Ratings    Ratings               `json:"ratings"`
	Comment    string                `json:"comment"`
}

// Validate checks every rating sits on the 1-7 scale.
func (s Survey) Validate() error {
	items := []struct {
		name  string
		value int
	}{
		{"dominance", s.Ratings.Dominance},
		{"pressure", s.Ratings.Pressure},
		{"fairness", s.Ratings.Fairness},
		{"satisfaction", s.Ratings.Satisfaction},
		{"trust", s.Ratings.Trust},
		{"expertise", s.Ratings.Expertise},
		{"recommend", s.Ratings.Recommend},
		{"manipulation_power", s.Ratings.ManipulationPower},
	}
	for _, item := range items {
		if item.value < 1 || item.value > 7 {
			return fmt.Errorf("%w: %s = %d", ErrInvalidRating, item.name, item.value)
		}
	}
	return nil
}
