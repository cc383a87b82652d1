package session

import (
	"fmt"
	"time"
)

// Timing holds every runtime period and delay.
type Timing struct {
	Tick              time.Duration `yaml:"tick"`
	AgentPeriod       time.Duration `yaml:"agent_period"`
	WorkDelay         time.Duration `yaml:"work_delay"`
	SleepDelay        time.Duration `yaml:"sleep_delay"`
	TurboDelay        time.Duration `yaml:"turbo_delay"`
	AutoRecordDelay   time.Duration `yaml:"auto_record_delay"`
	Watchdog          time.Duration `yaml:"watchdog"`
	SkillCheckTimeout time.Duration `yaml:"skill_check_timeout"`
	GatewayTimeout    time.Duration `yaml:"gateway_timeout"`
	LogSize           int           `yaml:"log_size"`
}

func DefaultTiming() Timing {
	return Timing{
		Tick:              time.Second,
		AgentPeriod:       500 * time.Millisecond,
		WorkDelay:         800 * time.Millisecond,
		SleepDelay:        1500 * time.Millisecond,
		TurboDelay:        200 * time.Millisecond,
		AutoRecordDelay:   200 * time.Millisecond,
		Watchdog:          5 * time.Second,
		SkillCheckTimeout: 30 * time.Second,
		GatewayTimeout:    4 * time.Second,
		LogSize:           50,
	}
}

// Validate rejects timings the watchdog could not supervise.
func (t Timing) Validate() error {
	switch {
	case t.Tick <= 0 || t.AgentPeriod <= 0:
		return fmt.Errorf("tick and agent_period must be positive")
	case t.Watchdog <= 0 || t.SkillCheckTimeout <= 0:
		return fmt.Errorf("watchdog timeouts must be positive")
	case t.WorkDelay >= t.Watchdog || t.SleepDelay >= t.Watchdog || t.AutoRecordDelay >= t.Watchdog:
		return fmt.Errorf("action delays must be shorter than the watchdog")
	case t.GatewayTimeout >= t.Watchdog:
		return fmt.Errorf("gateway_timeout must be shorter than the watchdog")
	case t.LogSize <= 0:
		return fmt.Errorf("log_size must be positive")
	}
	return nil
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Timers schedules one-shot callbacks.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realTimers struct{}

func (realTimers) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// RealTimers runs callbacks on the runtime's timers.
func RealTimers() Timers { return realTimers{} }
