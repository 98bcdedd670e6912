package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTenantProvisioned EventType = "tenant_provisioned"
	EventTypeSettingChanged    EventType = "setting_changed"
	EventTypePrivilegeGranted  EventType = "privilege_granted"
	EventTypePrivilegeRevoked  EventType = "privilege_revoked"
	EventTypeTenantErased      EventType = "tenant_erased"
)

// AuditEventTypes are the events forwarded to audit sinks
var AuditEventTypes = []EventType{
	EventTypeTenantProvisioned,
	EventTypeSettingChanged,
	EventTypePrivilegeGranted,
	EventTypePrivilegeRevoked,
	EventTypeTenantErased,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Guild() int64
}

// TenantProvisionedEvent is emitted when default settings are materialized for a new guild
type TenantProvisionedEvent struct {
	GuildID int64 `json:"guild_id"`
	Kinds   int   `json:"kinds"`
}

func (e TenantProvisionedEvent) Type() EventType { return EventTypeTenantProvisioned }
func (e TenantProvisionedEvent) Guild() int64    { return e.GuildID }

// SettingChangedEvent is emitted after a setting value is written
type SettingChangedEvent struct {
	GuildID int64  `json:"guild_id"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
}

func (e SettingChangedEvent) Type() EventType { return EventTypeSettingChanged }
func (e SettingChangedEvent) Guild() int64    { return e.GuildID }

// PrivilegeGrantedEvent is emitted when a role is granted privileged access
type PrivilegeGrantedEvent struct {
	GuildID int64 `json:"guild_id"`
	RoleID  int64 `json:"role_id"`
}

func (e PrivilegeGrantedEvent) Type() EventType { return EventTypePrivilegeGranted }
func (e PrivilegeGrantedEvent) Guild() int64    { return e.GuildID }

// PrivilegeRevokedEvent is emitted when one privileged grant is removed
type PrivilegeRevokedEvent struct {
	GuildID int64 `json:"guild_id"`
	RoleID  int64 `json:"role_id"`
}

func (e PrivilegeRevokedEvent) Type() EventType { return EventTypePrivilegeRevoked }
func (e PrivilegeRevokedEvent) Guild() int64    { return e.GuildID }

// TenantErasedEvent is emitted after a guild's stored data has been deleted
type TenantErasedEvent struct {
	GuildID int64  `json:"guild_id"`
	Reason  string `json:"reason"`

	// LogChannelID is the audit channel configured before erasure, zero if none
	LogChannelID int64 `json:"log_channel_id,omitempty"`
}

func (e TenantErasedEvent) Type() EventType { return EventTypeTenantErased }
func (e TenantErasedEvent) Guild() int64    { return e.GuildID }

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers.
// Handlers run on their own goroutines; a panicking handler is logged and does not affect the others.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"guildID":      event.Guild(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events published inside a unit of work until the transaction commits.
type TransactionalBus struct {
	mu      sync.Mutex
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes the event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, e)
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Queued event on transactional bus")
}

// Flush emits pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	// Handlers outlive the transaction, so they do not inherit its context
	eventCtx := context.WithoutCancel(ctx)
	for _, ev := range pending {
		b.real.Emit(eventCtx, ev)
	}

	log.WithField("flushed", len(pending)).Debug("Flushed transactional bus")
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
