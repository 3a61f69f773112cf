package domain

// Direction controls which side of a card is shown first.
type Direction string

// Possible direction values
const (
	DirectionBoth        Direction = "both"
	DirectionLeftToRight Direction = "leftToRight"
	DirectionRightToLeft Direction = "rightToLeft"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionBoth, DirectionLeftToRight, DirectionRightToLeft:
		return true
	default:
		return false
	}
}

// ParseDirection converts s into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", ErrInvalidDirection
	}
	return d, nil
}

// ReviewSettings are the per deck and user options of a review session.
type ReviewSettings struct {
	Direction Direction `json:"direction"`
	SkipEasy  bool      `json:"skip_easy"`
}

// DefaultReviewSettings returns the settings used before a user changes anything.
func DefaultReviewSettings() ReviewSettings {
	return ReviewSettings{Direction: DirectionBoth, SkipEasy: false}
}

// Validate checks the settings values.
func (s ReviewSettings) Validate() error {
	if !s.Direction.IsValid() {
		return ErrInvalidDirection
	}
	return nil
}
