package observability

// Metric name prefixes
const (
	MetricPrefix = "annobot"
)

// Metric names
const (
	// Command metrics
	CommandsTotal   = MetricPrefix + ".commands.total"
	CommandDuration = MetricPrefix + ".commands.duration"

	// Tenant metrics
	TenantsProvisionedTotal = MetricPrefix + ".tenants.provisioned_total"
	TenantsErasedTotal      = MetricPrefix + ".tenants.erased_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelCommand   = "command"
	LabelOutcome   = "outcome"
	LabelEventType = "event_type"
)
