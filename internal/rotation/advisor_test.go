package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvise(t *testing.T) {
	testCases := []struct {
		name          string
		rosterSize    int
		slotSize      int
		periodLength  int
		wantRotations int
		wantSeconds   int
	}{
		{
			name:       "roster divides evenly",
			rosterSize: 6, slotSize: 3, periodLength: 300,
			wantRotations: 2, wantSeconds: 150,
		},
		{
			name:       "roster does not divide evenly",
			rosterSize: 7, slotSize: 3, periodLength: 300,
			wantRotations: 3, wantSeconds: 100,
		},
		{
			name:       "whole roster on the field",
			rosterSize: 5, slotSize: 5, periodLength: 600,
			wantRotations: 1, wantSeconds: 600,
		},
		{
			name:       "period length not divisible by rotations",
			rosterSize: 9, slotSize: 4, periodLength: 500,
			wantRotations: 3, wantSeconds: 166,
		},
		{
			name:       "single participant slots",
			rosterSize: 4, slotSize: 1, periodLength: 240,
			wantRotations: 4, wantSeconds: 60,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			advice := Advise(tc.rosterSize, tc.slotSize, tc.periodLength)
			assert.Equal(t, tc.wantRotations, advice.RotationsPerPeriod)
			assert.Equal(t, tc.wantSeconds, advice.RecommendedSeconds)
		})
	}
}
