package bridge

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Members tracks which nicknames are present in each IRC channel.
//
// A channel has no entry until a NAMES snapshot arrives for it, and loses its
// entry again when the bridge itself parts. Every method other than
// OnSnapshot is a logged no-op for channels without an entry.
//
// Members is not safe for concurrent use; it is driven from the bridge loop.
type Members struct {
	channels map[string]map[string]struct{}
	log      *log.Entry
}

// NewMembers returns an empty tracker.
func NewMembers(logger *log.Entry) *Members {
	if logger == nil {
		logger = log.WithField("prefix", "members")
	}
	return &Members{
		channels: make(map[string]map[string]struct{}),
		log:      logger,
	}
}

// OnSnapshot replaces the member list of a channel wholesale.
func (m *Members) OnSnapshot(channel string, nicks []string) {
	set := make(map[string]struct{}, len(nicks))
	for _, nick := range nicks {
		set[nick] = struct{}{}
	}
	m.channels[strings.ToLower(channel)] = set
}

// OnJoin records a join and reports whether a notice should be shown.
//
// The bridge's own join is reported but not recorded: the server follows it
// with a NAMES snapshot that already contains our nick.
func (m *Members) OnJoin(channel, nick string, self bool) bool {
	if self {
		return true
	}

	set, ok := m.lookup(channel)
	if !ok {
		m.log.WithFields(log.Fields{
			"channel": channel,
			"nick":    nick,
		}).Warnln("No members tracked for channel on join, ignoring.")
		return false
	}

	set[nick] = struct{}{}
	return true
}

// OnPart records a part and reports whether a notice should be shown.
//
// When the bridge itself parts, the channel entry is dropped since nothing
// will keep it up to date.
func (m *Members) OnPart(channel, nick string, self bool) bool {
	channel = strings.ToLower(channel)
	if self {
		m.log.WithField("channel", channel).Debugln("Deleting members as bridge parted")
		delete(m.channels, channel)
		return false
	}

	set, ok := m.channels[channel]
	if !ok {
		m.log.WithFields(log.Fields{
			"channel": channel,
			"nick":    nick,
		}).Warnln("No members tracked for channel on part, ignoring.")
		return false
	}

	if _, ok := set[nick]; !ok {
		m.log.WithFields(log.Fields{
			"channel": channel,
			"nick":    nick,
		}).Warnln("Parting nick was not a tracked member")
	}
	delete(set, nick)
	return true
}

// OnQuit removes nick from each of the given channels, returning the
// channels it was actually removed from.
func (m *Members) OnQuit(nick string, channels []string) (notify []string) {
	for _, channel := range channels {
		set, ok := m.lookup(channel)
		if !ok {
			m.log.WithFields(log.Fields{
				"channel": channel,
				"nick":    nick,
			}).Warnln("No members tracked for channel on quit, ignoring.")
			continue
		}

		if _, ok := set[nick]; !ok {
			continue
		}
		delete(set, nick)
		notify = append(notify, strings.ToLower(channel))
	}
	return
}

// OnNickChange renames oldNick to newNick in each of the given channels
// where oldNick is a member, returning those channels.
func (m *Members) OnNickChange(oldNick, newNick string, channels []string) (notify []string) {
	for _, channel := range channels {
		set, ok := m.lookup(channel)
		if !ok {
			m.log.WithFields(log.Fields{
				"channel": channel,
				"nick":    oldNick,
			}).Warnln("No members tracked for channel on nick change, ignoring.")
			continue
		}

		if _, ok := set[oldNick]; !ok {
			continue
		}
		delete(set, oldNick)
		set[newNick] = struct{}{}
		notify = append(notify, strings.ToLower(channel))
	}
	return
}

// Members returns the sorted nicknames of a channel, and false if the
// channel is not tracked.
func (m *Members) Members(channel string) ([]string, bool) {
	set, ok := m.lookup(channel)
	if !ok {
		return nil, false
	}

	nicks := make([]string, 0, len(set))
	for nick := range set {
		nicks = append(nicks, nick)
	}
	sort.Strings(nicks)
	return nicks, true
}

// ChannelsOf returns the sorted tracked channels nick is a member of.
func (m *Members) ChannelsOf(nick string) []string {
	var channels []string
	for channel, set := range m.channels {
		if _, ok := set[nick]; ok {
			channels = append(channels, channel)
		}
	}
	sort.Strings(channels)
	return channels
}

func (m *Members) lookup(channel string) (map[string]struct{}, bool) {
	set, ok := m.channels[strings.ToLower(channel)]
	return set, ok
}
