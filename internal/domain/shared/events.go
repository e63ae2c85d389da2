// Package shared holds building blocks common to the catalog's aggregates.
package shared

import "time"

// DomainEvent represents something that happened to an aggregate
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// AggregateRoot collects pending events until the application layer drains them
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent records a domain event to be dispatched
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears pending domain events
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
