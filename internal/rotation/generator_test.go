package rotation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRoster(n int) []Participant {
	roster := make([]Participant, n)
	for i := range roster {
		roster[i] = Participant{Name: fmt.Sprintf("player-%02d", i+1)}
	}
	return roster
}

func TestGenerate_InvalidConfig(t *testing.T) {
	roster := makeRoster(4)

	testCases := []struct {
		name string
		cfg  Config
	}{
		{"slot size exceeds roster", Config{Periods: 2, PeriodSeconds: 300, SlotSize: 5}},
		{"zero periods", Config{Periods: 0, PeriodSeconds: 300, SlotSize: 3}},
		{"negative period length", Config{Periods: 2, PeriodSeconds: -1, SlotSize: 3}},
		{"zero slot size", Config{Periods: 2, PeriodSeconds: 300, SlotSize: 0}},
		{"negative override", Config{Periods: 2, PeriodSeconds: 300, SlotSize: 3, OverrideSeconds: -10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sched, err := Generate(roster, tc.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, sched)
		})
	}
}

// The scenario from the product brief: 6 players, 3 on the field, two
// 5-minute periods, no override. The advisor lands on two 150-second
// rotations per period and everyone ends up with exactly half the game.
func TestGenerate_SixPlayerScenario(t *testing.T) {
	roster := makeRoster(6)
	cfg := Config{Periods: 2, PeriodSeconds: 300, SlotSize: 3}

	sched, err := Generate(roster, cfg)
	require.NoError(t, err)

	assert.Equal(t, 150, sched.SlotSeconds)
	assert.True(t, sched.Advised)
	require.Len(t, sched.Slots, 4)
	for _, slot := range sched.Slots {
		assert.Equal(t, 150, slot.EndsAt-slot.StartsAt)
		assert.Len(t, slot.Occupants, 3)
	}

	// Half of a 600-second game each.
	for _, st := range sched.Stats {
		assert.Equal(t, 300, st.SecondsPlayed)
		assert.Equal(t, 2, st.SlotCount)
		assert.Equal(t, 300.0, st.TargetSeconds)
		assert.Equal(t, 0.0, st.Deviation)
		assert.Equal(t, 0.5, st.ShareOfGame)
	}
	assert.Equal(t, 0, sched.MaxSpread)
	assert.Equal(t, 300.0, sched.AverageSeconds)
}

func TestGenerate_ConservesPersonSeconds(t *testing.T) {
	testCases := []struct {
		rosterSize, slotSize, periods, periodSeconds, override int
	}{
		{6, 3, 2, 300, 0},
		{7, 3, 2, 300, 0},
		{5, 2, 3, 400, 0},
		{9, 4, 4, 720, 0},
		{8, 5, 2, 600, 90},
		{4, 4, 1, 300, 0},
	}

	for _, tc := range testCases {
		name := fmt.Sprintf("r%d_s%d_p%d_l%d_o%d", tc.rosterSize, tc.slotSize, tc.periods, tc.periodSeconds, tc.override)
		t.Run(name, func(t *testing.T) {
			roster := makeRoster(tc.rosterSize)
			cfg := Config{
				Periods:         tc.periods,
				PeriodSeconds:   tc.periodSeconds,
				SlotSize:        tc.slotSize,
				OverrideSeconds: tc.override,
			}
			sched, err := Generate(roster, cfg)
			require.NoError(t, err)

			sum := 0
			for _, st := range sched.Stats {
				sum += st.SecondsPlayed
			}
			assert.Equal(t, tc.slotSize*tc.periods*tc.periodSeconds, sum,
				"total person-seconds must equal slotSize * periods * periodSeconds")

			for _, slot := range sched.Slots {
				assert.Len(t, slot.Occupants, tc.slotSize)
			}
		})
	}
}

func TestGenerate_SpreadBoundedByTwoSlotDurations(t *testing.T) {
	testCases := []struct {
		rosterSize, slotSize, periods, periodSeconds int
	}{
		{7, 3, 2, 300},
		{5, 2, 3, 400},
		{11, 5, 4, 900},
		{6, 4, 2, 600},
	}

	for _, tc := range testCases {
		name := fmt.Sprintf("r%d_s%d", tc.rosterSize, tc.slotSize)
		t.Run(name, func(t *testing.T) {
			roster := makeRoster(tc.rosterSize)
			cfg := Config{Periods: tc.periods, PeriodSeconds: tc.periodSeconds, SlotSize: tc.slotSize}
			sched, err := Generate(roster, cfg)
			require.NoError(t, err)
			assert.LessOrEqual(t, sched.MaxSpread, 2*sched.SlotSeconds)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	roster := makeRoster(9)
	roster[2].HighTier = true
	roster[5].HighTier = true
	roster[6].HighTier = true
	cfg := Config{Periods: 3, PeriodSeconds: 480, SlotSize: 4, BalanceTiers: true}

	first, err := Generate(roster, cfg)
	require.NoError(t, err)
	second, err := Generate(roster, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_DoesNotMutateRoster(t *testing.T) {
	roster := []Participant{
		{Name: "dana", HighTier: true},
		{Name: "alex"},
		{Name: "casey", HighTier: true},
		{Name: "blake"},
	}
	original := make([]Participant, len(roster))
	copy(original, roster)

	_, err := Generate(roster, Config{Periods: 2, PeriodSeconds: 300, SlotSize: 2, BalanceTiers: true})
	require.NoError(t, err)

	assert.Equal(t, original, roster)
}

func TestGenerate_TierBalance(t *testing.T) {
	t.Run("both pools large enough", func(t *testing.T) {
		roster := makeRoster(8)
		for i := 0; i < 4; i++ {
			roster[i].HighTier = true
		}
		cfg := Config{Periods: 2, PeriodSeconds: 400, SlotSize: 4, BalanceTiers: true}

		sched, err := Generate(roster, cfg)
		require.NoError(t, err)
		for _, slot := range sched.Slots {
			assert.Equal(t, 2, slot.HighCount, "slot %d/%d", slot.Period, slot.Index)
			assert.Equal(t, 2, slot.LowCount, "slot %d/%d", slot.Period, slot.Index)
		}
	})

	t.Run("high tier exhausted, backfilled from low", func(t *testing.T) {
		roster := makeRoster(6)
		roster[0].HighTier = true // quota is 2 but only one high-tier exists
		cfg := Config{Periods: 2, PeriodSeconds: 300, SlotSize: 4, BalanceTiers: true}

		sched, err := Generate(roster, cfg)
		require.NoError(t, err)
		for _, slot := range sched.Slots {
			require.Len(t, slot.Occupants, 4)
			assert.LessOrEqual(t, slot.HighCount, 1)
			assert.GreaterOrEqual(t, slot.LowCount, 3)
		}
	})

	t.Run("low tier exhausted, backfilled from high", func(t *testing.T) {
		roster := makeRoster(5)
		for i := 1; i < 5; i++ {
			roster[i].HighTier = true
		}
		cfg := Config{Periods: 1, PeriodSeconds: 300, SlotSize: 3, BalanceTiers: true}

		sched, err := Generate(roster, cfg)
		require.NoError(t, err)
		for _, slot := range sched.Slots {
			require.Len(t, slot.Occupants, 3)
			// Quota is 1 low; when the single low-tier player is resting
			// deeper in the queue they still fill it, otherwise high tier
			// backfills.
			assert.GreaterOrEqual(t, slot.HighCount, 2)
		}
	})
}

func TestGenerate_ShortFinalSlot(t *testing.T) {
	// 300 seconds with a 120-second override: slots of 120, 120, 60.
	roster := makeRoster(4)
	cfg := Config{Periods: 1, PeriodSeconds: 300, SlotSize: 2, OverrideSeconds: 120}

	sched, err := Generate(roster, cfg)
	require.NoError(t, err)
	assert.False(t, sched.Advised)

	require.Len(t, sched.Slots, 3)
	assert.Equal(t, 120, sched.Slots[0].EndsAt-sched.Slots[0].StartsAt)
	assert.Equal(t, 120, sched.Slots[1].EndsAt-sched.Slots[1].StartsAt)
	assert.Equal(t, 60, sched.Slots[2].EndsAt-sched.Slots[2].StartsAt)
}

func TestGenerate_OverrideLongerThanPeriod(t *testing.T) {
	roster := makeRoster(4)
	cfg := Config{Periods: 2, PeriodSeconds: 300, SlotSize: 2, OverrideSeconds: 900}

	sched, err := Generate(roster, cfg)
	require.NoError(t, err)

	// One slot per period, clipped to the period length.
	require.Len(t, sched.Slots, 2)
	for i, slot := range sched.Slots {
		assert.Equal(t, i+1, slot.Period)
		assert.Equal(t, 300, slot.EndsAt-slot.StartsAt)
	}
}

func TestGenerate_SlotsContiguousAndStatsConsistent(t *testing.T) {
	roster := makeRoster(7)
	cfg := Config{Periods: 3, PeriodSeconds: 500, SlotSize: 3}

	sched, err := Generate(roster, cfg)
	require.NoError(t, err)

	// Slot ranges are contiguous and non-overlapping across the game.
	expectedStart := 0
	for _, slot := range sched.Slots {
		assert.Equal(t, expectedStart, slot.StartsAt)
		assert.Greater(t, slot.EndsAt, slot.StartsAt)
		expectedStart = slot.EndsAt
	}
	assert.Equal(t, sched.TotalSeconds(), expectedStart)

	// A participant's event log pairs up with its cumulative time and
	// slot count, and the periods list matches the events.
	for _, st := range sched.Stats {
		require.Len(t, st.Events, 2*st.SlotCount)
		played := 0
		seen := map[int]bool{}
		for i := 0; i < len(st.Events); i += 2 {
			in, out := st.Events[i], st.Events[i+1]
			assert.Equal(t, DirectionIn, in.Direction)
			assert.Equal(t, DirectionOut, out.Direction)
			assert.Equal(t, in.Period, out.Period)
			played += out.At - in.At
			seen[in.Period] = true
		}
		assert.Equal(t, st.SecondsPlayed, played)
		assert.Len(t, st.Periods, len(seen))
	}
}

func TestScheduleSlotAt(t *testing.T) {
	roster := makeRoster(6)
	sched, err := Generate(roster, Config{Periods: 2, PeriodSeconds: 300, SlotSize: 3})
	require.NoError(t, err)

	first := sched.SlotAt(0)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Period)
	assert.Equal(t, 1, first.Index)

	// 450 lands in the second slot of the second period.
	mid := sched.SlotAt(450)
	require.NotNil(t, mid)
	assert.Equal(t, 2, mid.Period)
	assert.Equal(t, 2, mid.Index)

	assert.Nil(t, sched.SlotAt(600), "game end is exclusive")
	assert.Nil(t, sched.SlotAt(-1))
}
