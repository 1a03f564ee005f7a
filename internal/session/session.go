// Package session holds per-session dashboard state: the loaded frame and
// the computed (records, report, stats) triple. State is replaced
// wholesale on each successful load; a failed load leaves the previous
// state visible.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/dataset"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/metrics"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/model"
)

// Session owns one loaded table and its derived outputs. It is not shared
// between sessions and has no internal locking; callers serialize access.
type Session struct {
	ID       uuid.UUID
	Frame    *dataset.Frame
	Records  []model.EnrichedRecord
	Channels []model.ChannelSummary
	Stats    model.SummaryStats
	LoadedAt time.Time
}

// New creates an empty session.
func New() *Session {
	return &Session{ID: uuid.New()}
}

// Load computes metrics for the frame and replaces the session state with
// the new triple. On error, existing state is untouched.
func (s *Session) Load(frame *dataset.Frame) error {
	result, err := metrics.Compute(frame)
	if err != nil {
		return err
	}

	s.Frame = frame
	s.Records = result.Records
	s.Channels = result.Channels
	s.Stats = result.Stats
	s.LoadedAt = time.Now()
	return nil
}

// Loaded reports whether a dataset has been loaded.
func (s *Session) Loaded() bool {
	return s.Frame != nil
}
