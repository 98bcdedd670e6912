package commands

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Recorder receives one observation per dispatched command
type Recorder interface {
	RecordCommand(ctx context.Context, command, outcome string, elapsed time.Duration)
}

// Dispatcher resolves invocations, enforces access, cooldowns and arity, runs the
// handler and turns every outcome into a Response
type Dispatcher struct {
	resolver  *Resolver
	cooldowns CooldownStore
	recorder  Recorder
}

// DispatcherOption customizes a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithCooldowns replaces the in-process cooldown store
func WithCooldowns(store CooldownStore) DispatcherOption {
	return func(d *Dispatcher) {
		d.cooldowns = store
	}
}

// WithRecorder attaches a metrics recorder
func WithRecorder(recorder Recorder) DispatcherOption {
	return func(d *Dispatcher) {
		d.recorder = recorder
	}
}

// NewDispatcher creates a dispatcher over resolver
func NewDispatcher(resolver *Resolver, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		resolver:  resolver,
		cooldowns: NewMemoryCooldowns(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one message. handled is false when the content is not a command.
// A nil response with handled true means the command replied on its own.
func (d *Dispatcher) Dispatch(ctx context.Context, inv *Invocation) (resp *Response, handled bool) {
	prefix := d.resolver.Prefix()
	name, args, rest, ok := Parse(inv.Content, prefix)
	if !ok {
		return nil, false
	}

	inv.Name = name
	inv.Args = args
	inv.rest = rest
	inv.Prefix = prefix

	logger := log.WithFields(log.Fields{
		"guildID": inv.GuildID,
		"userID":  inv.Author.UserID,
		"user":    inv.Author.Name,
		"content": inv.Content,
	})
	logger.Info("Command invoked")

	start := time.Now()
	resp, err := d.run(ctx, inv)
	if err != nil {
		cmdErr := Classify(err)
		if cmdErr.Command == "" {
			cmdErr.Command = name
		}
		d.logFailure(logger, cmdErr)
		d.record(ctx, inv, cmdErr.Kind.String(), start)

		resp = ErrorResponse(cmdErr, prefix)
		resp.Footer = RequestFooter(inv.Author.Name)
		return resp, true
	}

	d.record(ctx, inv, "ok", start)
	if resp != nil && resp.Footer == "" {
		resp.Footer = RequestFooter(inv.Author.Name)
	}
	return resp, true
}

func (d *Dispatcher) run(ctx context.Context, inv *Invocation) (resp *Response, err error) {
	authorized, err := d.resolver.Authorized(ctx, inv.GuildID, inv.GuildOwnerID, inv.Author)
	if err != nil {
		return nil, err
	}
	inv.Authorized = authorized

	cmd, found := d.resolver.Lookup(inv.Name, true)
	if !found {
		suggestion, _ := d.resolver.Suggest(inv.Name, authorized)
		return nil, NotFoundError(inv.Name, suggestion)
	}
	inv.Command = cmd

	if cmd.Hidden && !authorized {
		return nil, UnauthorizedError(cmd.Name)
	}

	if cmd.Cooldown > 0 && d.cooldowns != nil {
		remaining, ok, err := d.cooldowns.Acquire(ctx, CooldownKey(cmd.Name, inv.GuildID, inv.Author.UserID), cmd.Cooldown)
		if err != nil {
			// A broken cooldown backend should not take commands down with it
			log.WithError(err).WithField("command", cmd.Name).Warn("Cooldown check failed")
		} else if !ok {
			return nil, CooldownError(cmd.Name, remaining)
		}
	}

	if len(inv.Args) < cmd.MinArgs {
		return nil, MissingArgumentError(cmd.Name, cmd.UsageLine(inv.Prefix))
	}

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("command %s panicked: %v", cmd.Name, r)
		}
	}()

	return cmd.Handler(ctx, inv)
}

func (d *Dispatcher) logFailure(logger *log.Entry, err *CommandError) {
	logger = logger.WithFields(log.Fields{
		"command": err.Command,
		"kind":    err.Kind.String(),
	})

	switch err.Kind {
	case KindInternal:
		logger.WithError(err.Err).Error("Command failed")
	case KindUnauthorized:
		logger.Info("Command rejected: insufficient permissions")
	case KindNotFound:
		logger.WithField("suggestion", err.Suggestion).Info("Command not found")
	case KindMissingArgument:
		logger.Info("Command called with insufficient arguments")
	default:
		logger.WithField("detail", err.Error()).Info("Command not completed")
	}
}

func (d *Dispatcher) record(ctx context.Context, inv *Invocation, outcome string, start time.Time) {
	if d.recorder == nil {
		return
	}
	// Unknown tokens are user-controlled; keep metric cardinality bounded
	name := "unknown"
	if inv.Command != nil {
		name = inv.Command.Name
	}
	d.recorder.RecordCommand(ctx, name, outcome, time.Since(start))
}
