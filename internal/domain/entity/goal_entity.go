package entity

import "time"

// Goal is a savings target with a deadline.
type Goal struct {
	ID          string
	UserID      string
	Name        string
	Label       string // free-text grouping shown on the goals page
	TargetCents int64
	SavedCents  int64
	Deadline    time.Time // date precision
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Progress returns the saved/target ratio as a whole percentage, capped at 100.
func (g *Goal) Progress() int {
	if g.TargetCents <= 0 {
		return 0
	}
	p := int(g.SavedCents * 100 / g.TargetCents)
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}
