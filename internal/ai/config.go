package ai

import "time"

// Config holds decision tunables. Zero values are replaced by DefaultConfig values
// in NewBot.
type Config struct {
	LongGoalPeriod  time.Duration
	LongGoalJitter  time.Duration
	LongGoalTimeout time.Duration

	ShortGoalDelay      time.Duration
	ShortGoalIdleDelay  time.Duration
	ShortGoalTimeout    time.Duration
	ShortGoalRadius     float64
	ShortGoalLongRadius float64

	StatusUpdatePeriod time.Duration

	SpawnFreshness    time.Duration
	MaxGoalCandidates int
	MoveTimeWeight    float64
	WaitTimeWeight    float64
	StickinessCurrent float64
	StickinessFresh   float64
	MaxDistanceFactor float64

	WeaponChoicePeriod    time.Duration
	FastSwitchCheckPeriod time.Duration // zero checks every frame
	WeaponJitterPeriod    time.Duration
	AimCacheTTL           time.Duration

	EnemyForgetTime       time.Duration
	EnemySelectionTimeout time.Duration

	DisabledAreaTimeout time.Duration
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		LongGoalPeriod:  2 * time.Second,
		LongGoalJitter:  time.Second,
		LongGoalTimeout: 20 * time.Second,

		ShortGoalDelay:      250 * time.Millisecond,
		ShortGoalIdleDelay:  700 * time.Millisecond,
		ShortGoalTimeout:    time.Second,
		ShortGoalRadius:     200,
		ShortGoalLongRadius: 400,

		StatusUpdatePeriod: 500 * time.Millisecond,

		SpawnFreshness:    15 * time.Second,
		MaxGoalCandidates: 16,
		MoveTimeWeight:    1.0,
		WaitTimeWeight:    3.5,
		StickinessCurrent: 0.6,
		StickinessFresh:   0.8,
		MaxDistanceFactor: 20000,

		WeaponChoicePeriod:    1500 * time.Millisecond,
		FastSwitchCheckPeriod: 0,
		WeaponJitterPeriod:    2 * time.Second,
		AimCacheTTL:           64 * time.Millisecond,

		EnemyForgetTime:       3 * time.Second,
		EnemySelectionTimeout: 300 * time.Millisecond,

		DisabledAreaTimeout: 5 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	fillF := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&c.LongGoalPeriod, d.LongGoalPeriod)
	if c.LongGoalJitter < 0 {
		c.LongGoalJitter = 0
	}
	fill(&c.LongGoalTimeout, d.LongGoalTimeout)
	fill(&c.ShortGoalDelay, d.ShortGoalDelay)
	fill(&c.ShortGoalIdleDelay, d.ShortGoalIdleDelay)
	fill(&c.ShortGoalTimeout, d.ShortGoalTimeout)
	fillF(&c.ShortGoalRadius, d.ShortGoalRadius)
	fillF(&c.ShortGoalLongRadius, d.ShortGoalLongRadius)
	fill(&c.StatusUpdatePeriod, d.StatusUpdatePeriod)
	fill(&c.SpawnFreshness, d.SpawnFreshness)
	if c.MaxGoalCandidates <= 0 {
		c.MaxGoalCandidates = d.MaxGoalCandidates
	}
	fillF(&c.MoveTimeWeight, d.MoveTimeWeight)
	fillF(&c.WaitTimeWeight, d.WaitTimeWeight)
	fillF(&c.StickinessCurrent, d.StickinessCurrent)
	fillF(&c.StickinessFresh, d.StickinessFresh)
	fillF(&c.MaxDistanceFactor, d.MaxDistanceFactor)
	fill(&c.WeaponChoicePeriod, d.WeaponChoicePeriod)
	fill(&c.FastSwitchCheckPeriod, d.FastSwitchCheckPeriod)
	fill(&c.WeaponJitterPeriod, d.WeaponJitterPeriod)
	fill(&c.AimCacheTTL, d.AimCacheTTL)
	fill(&c.EnemyForgetTime, d.EnemyForgetTime)
	fill(&c.EnemySelectionTimeout, d.EnemySelectionTimeout)
	fill(&c.DisabledAreaTimeout, d.DisabledAreaTimeout)
	return c
}

// frameClock holds the level time of the frame being thought.
type frameClock struct {
	now int64
}
