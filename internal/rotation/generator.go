package rotation

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidConfig marks a configuration the generator refuses to run on.
// It is reported before any computation begins; a rejected call never
// returns a partial Schedule.
var ErrInvalidConfig = errors.New("invalid rotation configuration")

// Participant is a roster entry. Identity is the name; HighTier is the
// optional binary strength classification used only when tier balancing
// is active.
type Participant struct {
	Name     string `json:"name"`
	HighTier bool   `json:"highTier"`
}

// Config describes one generation request.
type Config struct {
	// Periods is the number of periods in the game.
	Periods int `json:"periods"`
	// PeriodSeconds is the length of one period.
	PeriodSeconds int `json:"periodSeconds"`
	// SlotSize is the number of participants on the field per slot.
	SlotSize int `json:"slotSize"`
	// OverrideSeconds, when positive, replaces the advisor's recommended
	// slot duration.
	OverrideSeconds int `json:"overrideSeconds"`
	// BalanceTiers activates the high/low tier balance constraint.
	BalanceTiers bool `json:"balanceTiers"`
}

// Substitution directions as they appear in a participant's event log.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Event is one substitution in a participant's chronological log.
type Event struct {
	Direction string `json:"direction"`
	At        int    `json:"at"` // seconds from game start
	Period    int    `json:"period"`
	SlotIndex int    `json:"slotIndex"`
}

// Slot is one fixed-duration window within a period and the participants
// occupying it. Start/End are absolute seconds from game start; slots are
// contiguous and non-overlapping within a period, and periods are
// contiguous across the game.
type Slot struct {
	Period    int           `json:"period"`
	Index     int           `json:"index"` // 1-based within the period
	StartsAt  int           `json:"startsAt"`
	EndsAt    int           `json:"endsAt"`
	Occupants []Participant `json:"occupants"`
	HighCount int           `json:"highCount"`
	LowCount  int           `json:"lowCount"`
}

// Stats is the per-participant summary accumulated over the whole game.
type Stats struct {
	Name          string  `json:"name"`
	HighTier      bool    `json:"highTier"`
	SecondsPlayed int     `json:"secondsPlayed"`
	SlotCount     int     `json:"slotCount"`
	Periods       []int   `json:"periods"` // distinct periods appeared in, ascending
	Events        []Event `json:"events"`
	TargetSeconds float64 `json:"targetSeconds"`
	Deviation     float64 `json:"deviation"`   // SecondsPlayed - TargetSeconds
	ShareOfGame   float64 `json:"shareOfGame"` // fraction of total game time
}

// Schedule is the complete output of one generation: the ordered slot
// assignments plus aggregate statistics. It is immutable once returned.
type Schedule struct {
	Config         Config  `json:"config"`
	SlotSeconds    int     `json:"slotSeconds"`
	Advised        bool    `json:"advised"` // false when OverrideSeconds was used
	Slots          []Slot  `json:"slots"`
	Stats          []Stats `json:"stats"` // roster order
	TargetSeconds  float64 `json:"targetSeconds"`
	AverageSeconds float64 `json:"averageSeconds"`
	MaxSpread      int     `json:"maxSpread"` // max pairwise cumulative-time gap
}

// TotalSeconds is the full game duration.
func (s *Schedule) TotalSeconds() int {
	return s.Config.Periods * s.Config.PeriodSeconds
}

// SlotAt returns the slot covering the given elapsed time, or nil when
// elapsed falls outside the game. Linear scan; slot ranges are sorted,
// contiguous and non-overlapping by construction.
func (s *Schedule) SlotAt(elapsed int) *Slot {
	for i := range s.Slots {
		if elapsed >= s.Slots[i].StartsAt && elapsed < s.Slots[i].EndsAt {
			return &s.Slots[i]
		}
	}
	return nil
}

// queueEntry is the generator's private working state for one participant.
type queueEntry struct {
	p       Participant
	seconds int
	slots   int
	periods []int
	events  []Event
}

// Generate runs the greedy single-pass allocator. It validates the
// configuration up front, resolves the effective slot duration (override or
// advisor), then fills every period by repeatedly picking the most-rested
// participants from a private working queue. The caller's roster slice is
// never reordered or mutated.
func Generate(roster []Participant, cfg Config) (*Schedule, error) {
	if err := validate(len(roster), cfg); err != nil {
		return nil, err
	}

	advice := Advise(len(roster), cfg.SlotSize, cfg.PeriodSeconds)
	slotSeconds := advice.RecommendedSeconds
	advised := true
	if cfg.OverrideSeconds > 0 {
		slotSeconds = cfg.OverrideSeconds
		advised = false
	}
	if slotSeconds < 1 {
		// More rotations than seconds in the period; one-second slots
		// keep the pass finite.
		slotSeconds = 1
	}

	queue := make([]*queueEntry, len(roster))
	byRoster := make([]*queueEntry, len(roster))
	for i, p := range roster {
		e := &queueEntry{p: p}
		queue[i] = e
		byRoster[i] = e
	}

	var slots []Slot
	for period := 1; period <= cfg.Periods; period++ {
		periodStart := (period - 1) * cfg.PeriodSeconds
		remaining := cfg.PeriodSeconds
		for index := 1; remaining > 0; index++ {
			// Ties preserve queue order, which is what makes the
			// rotation round-robin among equally rested participants.
			sort.SliceStable(queue, func(i, j int) bool {
				return queue[i].seconds < queue[j].seconds
			})

			var picked []*queueEntry
			if cfg.BalanceTiers {
				picked = pickBalanced(queue, cfg.SlotSize)
			} else {
				picked = append(picked, queue[:cfg.SlotSize]...)
			}
			queue = requeue(queue, picked)

			duration := slotSeconds
			if duration > remaining {
				duration = remaining // final slot absorbs the remainder
			}
			start := periodStart + (cfg.PeriodSeconds - remaining)
			end := start + duration

			slot := Slot{
				Period:    period,
				Index:     index,
				StartsAt:  start,
				EndsAt:    end,
				Occupants: make([]Participant, 0, len(picked)),
			}
			for _, e := range picked {
				slot.Occupants = append(slot.Occupants, e.p)
				if e.p.HighTier {
					slot.HighCount++
				} else {
					slot.LowCount++
				}
				e.seconds += duration
				e.slots++
				if n := len(e.periods); n == 0 || e.periods[n-1] != period {
					e.periods = append(e.periods, period)
				}
				e.events = append(e.events,
					Event{Direction: DirectionIn, At: start, Period: period, SlotIndex: index},
					Event{Direction: DirectionOut, At: end, Period: period, SlotIndex: index},
				)
			}
			slots = append(slots, slot)
			remaining -= duration
		}
	}

	return assemble(byRoster, cfg, slots, slotSeconds, advised), nil
}

func validate(rosterSize int, cfg Config) error {
	switch {
	case cfg.Periods <= 0:
		return fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidConfig, cfg.Periods)
	case cfg.PeriodSeconds <= 0:
		return fmt.Errorf("%w: period length must be positive, got %d", ErrInvalidConfig, cfg.PeriodSeconds)
	case cfg.SlotSize <= 0:
		return fmt.Errorf("%w: slot size must be positive, got %d", ErrInvalidConfig, cfg.SlotSize)
	case cfg.OverrideSeconds < 0:
		return fmt.Errorf("%w: override duration must be positive, got %d", ErrInvalidConfig, cfg.OverrideSeconds)
	case cfg.SlotSize > rosterSize:
		return fmt.Errorf("%w: slot size %d exceeds roster size %d", ErrInvalidConfig, cfg.SlotSize, rosterSize)
	}
	return nil
}

// pickBalanced scans the time-sorted queue once, taking high-tier
// participants up to ceil(size/2) and low-tier up to the rest. If one tier
// runs out before its quota is filled, the shortfall is backfilled from the
// participants skipped during the scan, still in sorted order.
func pickBalanced(queue []*queueEntry, size int) []*queueEntry {
	highQuota := (size + 1) / 2
	lowQuota := size - highQuota

	picked := make([]*queueEntry, 0, size)
	var skipped []*queueEntry
	highTaken, lowTaken := 0, 0
	for _, e := range queue {
		if len(picked) == size {
			break
		}
		switch {
		case e.p.HighTier && highTaken < highQuota:
			picked = append(picked, e)
			highTaken++
		case !e.p.HighTier && lowTaken < lowQuota:
			picked = append(picked, e)
			lowTaken++
		default:
			skipped = append(skipped, e)
		}
	}
	for _, e := range skipped {
		if len(picked) == size {
			break
		}
		picked = append(picked, e)
	}
	return picked
}

// requeue moves this slot's occupants to the back of the working queue, in
// the order they were selected. Everyone else keeps their relative order at
// the front, so occupants do not repeat before the rest have had a turn.
func requeue(queue, picked []*queueEntry) []*queueEntry {
	inSlot := make(map[*queueEntry]bool, len(picked))
	for _, e := range picked {
		inSlot[e] = true
	}
	next := make([]*queueEntry, 0, len(queue))
	for _, e := range queue {
		if !inSlot[e] {
			next = append(next, e)
		}
	}
	return append(next, picked...)
}

func assemble(entries []*queueEntry, cfg Config, slots []Slot, slotSeconds int, advised bool) *Schedule {
	total := cfg.Periods * cfg.PeriodSeconds
	target := float64(cfg.SlotSize) / float64(len(entries)) * float64(total)

	stats := make([]Stats, 0, len(entries))
	sum := 0
	minPlayed, maxPlayed := entries[0].seconds, entries[0].seconds
	for _, e := range entries {
		sum += e.seconds
		if e.seconds < minPlayed {
			minPlayed = e.seconds
		}
		if e.seconds > maxPlayed {
			maxPlayed = e.seconds
		}
		stats = append(stats, Stats{
			Name:          e.p.Name,
			HighTier:      e.p.HighTier,
			SecondsPlayed: e.seconds,
			SlotCount:     e.slots,
			Periods:       e.periods,
			Events:        e.events,
			TargetSeconds: target,
			Deviation:     float64(e.seconds) - target,
			ShareOfGame:   float64(e.seconds) / float64(total),
		})
	}

	return &Schedule{
		Config:         cfg,
		SlotSeconds:    slotSeconds,
		Advised:        advised,
		Slots:          slots,
		Stats:          stats,
		TargetSeconds:  target,
		AverageSeconds: float64(sum) / float64(len(entries)),
		MaxSpread:      maxPlayed - minPlayed,
	}
}
