package bridge

import (
	"runtime/debug"
	"sync"

	"github.com/ircbridge/discord-irc/commands"
	"github.com/ircbridge/discord-irc/ircnick"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// eventQueueSize bounds how many events may wait for the bridge loop.
const eventQueueSize = 256

// A Bridge relays messages between channels on an IRC server and channels on Discord
type Bridge struct {
	Config *Config

	discord     *discordBot
	ircListener *ircListener
	relay       *Relay

	events    chan Event
	done      chan bool
	stopped   chan struct{}
	closeOnce sync.Once

	debugMu sync.Mutex
}

// New Bridge
func New(conf *Config) (*Bridge, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration invalid")
	}

	if nick := ircnick.Clean(conf.Nickname); nick != conf.Nickname {
		log.WithFields(log.Fields{
			"nickname": conf.Nickname,
			"cleaned":  nick,
		}).Warnln("Nickname is not valid on IRC, using a cleaned version")
		conf.Nickname = nick
	}

	channels, err := NewChannelMap(conf.ChannelMappings)
	if err != nil {
		return nil, errors.Wrap(err, "channel mappings could not be set")
	}

	store, err := commands.Load(conf.ListsFile)
	if err != nil {
		return nil, errors.Wrap(err, "could not load lists")
	}
	for _, admin := range conf.Admins {
		store.AddAdmin(admin)
	}

	dib := &Bridge{
		Config: conf,

		events:  make(chan Event, eventQueueSize),
		done:    make(chan bool),
		stopped: make(chan struct{}),
	}

	dib.discord, err = newDiscord(dib, conf.DiscordBotToken, conf.GuildID)
	if err != nil {
		return nil, errors.Wrap(err, "could not create discord bot")
	}

	dib.ircListener = newIRCListener(dib)
	dib.relay = newRelay(conf, channels, store, dib.discord, dib.ircListener)

	go dib.loop()

	return dib, nil
}

// SetDebugMode allows you to control debug logging.
// It may be called from any goroutine.
func (b *Bridge) SetDebugMode(debug bool) {
	b.debugMu.Lock()
	defer b.debugMu.Unlock()

	b.Config.Debug = debug
	b.ircListener.SetDebugMode(debug)
}

// Debug reports whether debug mode is on.
func (b *Bridge) Debug() bool {
	b.debugMu.Lock()
	defer b.debugMu.Unlock()
	return b.Config.Debug
}

// Open all the connections required to run the bridge
func (b *Bridge) Open() (err error) {
	// Open a websocket connection to Discord and begin listening.
	err = b.discord.Open()
	if err != nil {
		return errors.Wrap(err, "can't open discord")
	}

	err = b.ircListener.Connect(b.Config.IRCServer)
	if err != nil {
		return errors.Wrap(err, "can't open irc connection")
	}

	// run listener loop
	go b.ircListener.Loop()

	return
}

// Close the Bridge
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		b.done <- true
		<-b.done
	})
}

// push queues an event for the bridge loop. Events arriving after the
// bridge has closed are dropped.
func (b *Bridge) push(ev Event) {
	select {
	case b.events <- ev:
	case <-b.stopped:
	}
}

func (b *Bridge) loop() {
	for {
		select {
		case ev := <-b.events:
			b.dispatch(ev)

		// Done!
		case <-b.done:
			close(b.stopped)

			if b.ircListener.Connected() {
				b.ircListener.Quit()
			}
			if err := b.discord.Close(); err != nil {
				log.WithError(err).Warnln("could not close discord session")
			}
			close(b.done)

			return
		}
	}
}

// dispatch hands ev to the relay. A failure handling one event is logged and
// does not stop the bridge.
func (b *Bridge) dispatch(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"event": ev,
				"panic": r,
			}).Errorln("Recovered while handling event\n" + string(debug.Stack()))
		}
	}()

	b.relay.Dispatch(ev)
}
