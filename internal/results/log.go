package results

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/suspsim/internal/suspension"
)

// Row is one evaluated interaction.
type Row struct {
	ID                string    `json:"id"`
	Time              time.Time `json:"time"`
	Speed             float64   `json:"speed"`
	Radius            float64   `json:"radius"`
	Acceleration      float64   `json:"acceleration"`
	LateralForce      float64   `json:"lateral_force"`
	LongitudinalForce float64   `json:"longitudinal_force"`
	SlipAngle         float64   `json:"slip_angle"`
	FrontShift        float64   `json:"front_shift"`
	RearShift         float64   `json:"rear_shift"`
}

// Log keeps the rows of one session in memory. A positive capacity drops the
// oldest rows once exceeded.
type Log struct {
	mu       sync.Mutex
	rows     []Row
	capacity int
	now      func() time.Time
}

func NewLog(capacity int) *Log {
	return &Log{capacity: capacity, now: time.Now}
}

func (l *Log) Append(m suspension.DerivedMetrics) Row {
	row := Row{
		ID:                uuid.NewString(),
		Time:              l.now(),
		Speed:             m.State.Speed,
		Radius:            m.State.Radius,
		Acceleration:      m.Acceleration,
		LateralForce:      m.LateralForce,
		LongitudinalForce: m.LongitudinalForce,
		SlipAngle:         m.SlipAngle,
		FrontShift:        m.FrontShift,
		RearShift:         m.RearShift,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, row)
	if l.capacity > 0 && len(l.rows) > l.capacity {
		l.rows = append(l.rows[:0:0], l.rows[len(l.rows)-l.capacity:]...)
	}
	return row
}

// Rows returns a copy of the rows, oldest first.
func (l *Log) Rows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Tail returns up to n of the newest rows, oldest first.
func (l *Log) Tail(n int) []Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.rows) {
		n = len(l.rows)
	}
	if n <= 0 {
		return []Row{}
	}
	out := make([]Row, n)
	copy(out, l.rows[len(l.rows)-n:])
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rows)
}

func (l *Log) Last() (Row, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.rows) == 0 {
		return Row{}, false
	}
	return l.rows[len(l.rows)-1], true
}

func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = nil
}
