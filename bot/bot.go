package bot

import (
	"fmt"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/bot/features/admin"
	"annobot/bot/features/auditlog"
	"annobot/bot/features/keepontop"
	"annobot/bot/features/matchmaking"
	"annobot/bot/features/misc"
	"annobot/bot/features/tags"
	"annobot/events"
	"annobot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	Prefix  string
	OwnerID int64
	Version string
}

type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory service.UnitOfWorkFactory
	dispatcher *commands.Dispatcher
	keepOnTop  *keepontop.Feature
}

// discordSession is what the features need from *discordgo.Session
type discordSession interface {
	common.Messenger
	misc.LatencySource
}

func New(config Config, uowFactory service.UnitOfWorkFactory, eventBus *events.Bus, opts ...commands.DispatcherOption) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
	}

	registry := commands.NewRegistry()
	bot.keepOnTop, err = registerFeatures(registry, config, uowFactory, dg, eventBus)
	if err != nil {
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	resolver := commands.NewResolver(registry, NewPrivilegeSource(uowFactory), config.OwnerID, config.Prefix)
	if err := registry.Register(commands.NewHelpCommand(resolver)); err != nil {
		return nil, fmt.Errorf("error registering help command: %w", err)
	}
	bot.dispatcher = commands.NewDispatcher(resolver, opts...)

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleGuildDelete)
	dg.AddHandler(bot.handleMessageCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	log.WithFields(log.Fields{
		"prefix":   config.Prefix,
		"commands": len(registry.Commands()),
	}).Info("Discord session opened")
	return bot, nil
}

// registerFeatures wires every feature into the registry and subscribes the audit log
// to the bus. The keep-on-top feature is returned because it also watches messages.
func registerFeatures(registry *commands.Registry, config Config, uowFactory service.UnitOfWorkFactory, session discordSession, eventBus *events.Bus) (*keepontop.Feature, error) {
	keepOnTop := keepontop.NewFeature(uowFactory, session)

	groups := [][]*commands.Command{
		misc.NewFeature(session, config.Version).Commands(),
		tags.NewFeature(uowFactory).Commands(),
		matchmaking.NewFeature(uowFactory, session).Commands(),
		keepOnTop.Commands(),
		admin.NewFeature(uowFactory).Commands(),
	}
	for _, group := range groups {
		if err := registry.Register(group...); err != nil {
			return nil, err
		}
	}

	auditlog.NewFeature(uowFactory, session).SubscribeTo(eventBus)
	return keepOnTop, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}
