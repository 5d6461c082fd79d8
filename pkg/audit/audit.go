package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action identifies the mutation an event records
type Action string

const (
	ActionCreateNode Action = "create_node"
	ActionCreateEdge Action = "create_edge"
	ActionSeal       Action = "seal"
	ActionUnseal     Action = "unseal"
	// ActionToggle is used for toggles that failed, when no resulting
	// state exists.
	ActionToggle Action = "toggle_sealed"
)

// ResourceType represents the kind of graph element touched
type ResourceType string

const (
	ResourceNode ResourceType = "node"
	ResourceEdge ResourceType = "edge"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event is a single journal entry
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	Action       Action         `json:"action"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Filter selects events. Zero-valued fields match everything.
type Filter struct {
	Action       Action
	ResourceType ResourceType
	ResourceID   string
	Status       Status
	StartTime    *time.Time
	EndTime      *time.Time
}

func (f *Filter) matches(e *Event) bool {
	if f == nil {
		return true
	}
	switch {
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.ResourceType != "" && e.ResourceType != f.ResourceType:
		return false
	case f.ResourceID != "" && e.ResourceID != f.ResourceID:
		return false
	case f.Status != "" && e.Status != f.Status:
		return false
	case f.StartTime != nil && e.Timestamp.Before(*f.StartTime):
		return false
	case f.EndTime != nil && e.Timestamp.After(*f.EndTime):
		return false
	}
	return true
}

// Recorder accepts journal events.
type Recorder interface {
	Record(event *Event)
}

// Journal keeps the most recent mutations in a circular buffer. Once full,
// each new event overwrites the oldest.
type Journal struct {
	events   []*Event
	next     int
	count    int
	recorded int64
	mu       sync.RWMutex
}

// NewJournal creates a journal holding at most size events. A size below
// one is raised to one.
func NewJournal(size int) *Journal {
	if size < 1 {
		size = 1
	}
	return &Journal{events: make([]*Event, size)}
}

// Record stores an event, filling in its ID and timestamp when unset.
func (j *Journal) Record(event *Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.events[j.next] = event
	j.next = (j.next + 1) % len(j.events)
	if j.count < len(j.events) {
		j.count++
	}
	j.recorded++
}

// at returns the i-th retained event, oldest first. Caller holds the lock.
func (j *Journal) at(i int) *Event {
	size := len(j.events)
	return j.events[(j.next-j.count+i+size)%size]
}

// GetEvents returns retained events matching filter, oldest first.
func (j *Journal) GetEvents(filter *Filter) []*Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	result := make([]*Event, 0, j.count)
	for i := 0; i < j.count; i++ {
		if e := j.at(i); filter.matches(e) {
			result = append(result, e)
		}
	}
	return result
}

// GetRecentEvents returns up to n events, newest first.
func (j *Journal) GetRecentEvents(n int) []*Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n = min(n, j.count)
	result := make([]*Event, 0, max(n, 0))
	for i := j.count - 1; i >= j.count-n; i-- {
		result = append(result, j.at(i))
	}
	return result
}

// Len returns the number of retained events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.count
}

// Recorded returns the number of events ever recorded, including those
// already overwritten.
func (j *Journal) Recorded() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.recorded
}

// Clear drops every retained event.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	clear(j.events)
	j.next = 0
	j.count = 0
}

// NewEvent creates a successful event
func NewEvent(action Action, resourceType ResourceType, resourceID string) *Event {
	return &Event{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       StatusSuccess,
	}
}

// NewFailedEvent creates a failed event carrying err's message
func NewFailedEvent(action Action, resourceType ResourceType, resourceID string, err error) *Event {
	e := NewEvent(action, resourceType, resourceID)
	e.Status = StatusFailure
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	return e
}

// String returns a human-readable representation of an event
func (e *Event) String() string {
	s := fmt.Sprintf("[%s] %s %s %s (status: %s)",
		e.Timestamp.Format(time.RFC3339),
		e.Action,
		e.ResourceType,
		e.ResourceID,
		e.Status,
	)
	if e.ErrorMessage != "" {
		s += ": " + e.ErrorMessage
	}
	return s
}
