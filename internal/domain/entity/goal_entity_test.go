package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name   string
		target int64
		saved  int64
		want   int
	}{
		{"zero target", 0, 500, 0},
		{"nothing saved", 100000, 0, 0},
		{"partial", 100000, 74500, 74},
		{"complete", 100000, 100000, 100},
		{"overshoot capped", 100000, 150000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{TargetCents: tt.target, SavedCents: tt.saved}
			assert.Equal(t, tt.want, g.Progress())
		})
	}
}
