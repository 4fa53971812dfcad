package bridge

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// A ChannelMap holds the association between Discord channels and IRC channels.
//
// Discord channels are referred to either by ID or by "#name". IRC channel
// names are always stored lower-cased, with any channel key stripped.
type ChannelMap struct {
	toIRC     map[string]string // From Discord ref to "#irc"
	toDiscord map[string]string // From "#irc" to Discord ref
}

// NewChannelMap builds a ChannelMap from Discord:IRC mappings as found in the
// configuration. IRC values may carry a trailing channel key ("#chan key").
//
// If multiple Discord channels point at the same IRC channel, the inverse
// lookup resolves to the last one in sorted key order.
func NewChannelMap(in map[string]string) (*ChannelMap, error) {
	if len(in) == 0 {
		return nil, errors.New("channel_mappings is empty")
	}

	m := &ChannelMap{
		toIRC:     make(map[string]string, len(in)),
		toDiscord: make(map[string]string, len(in)),
	}

	// Sort so that the inverse map is deterministic
	discordRefs := make([]string, 0, len(in))
	for discord := range in {
		discordRefs = append(discordRefs, discord)
	}
	sort.Strings(discordRefs)

	for _, discord := range discordRefs {
		ircChannel, _ := splitChannelKey(in[discord])
		if discord == "" || ircChannel == "" {
			return nil, errors.Errorf("mapping %q -> %q is invalid", discord, in[discord])
		}

		m.toIRC[discord] = ircChannel
		m.toDiscord[ircChannel] = discord
	}

	return m, nil
}

// splitChannelKey splits "#chan key" into a lower-cased channel name and its key.
func splitChannelKey(s string) (channel, key string) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return "", ""
	}

	channel = strings.ToLower(parts[0])
	if len(parts) > 1 {
		key = parts[1]
	}
	return
}

// IRCChannel returns the IRC channel a Discord channel ID or "#name" maps to.
func (m *ChannelMap) IRCChannel(discordRef string) (string, bool) {
	irc, ok := m.toIRC[discordRef]
	return irc, ok
}

// IRCChannelFor looks up a Discord channel first by ID, then by "#name".
func (m *ChannelMap) IRCChannelFor(channelID, channelName string) (string, bool) {
	if irc, ok := m.IRCChannel(channelID); ok {
		return irc, true
	}
	if channelName == "" {
		return "", false
	}
	return m.IRCChannel("#" + channelName)
}

// DiscordChannel returns the Discord ref an IRC channel maps to. The lookup
// is case-insensitive.
func (m *ChannelMap) DiscordChannel(ircChannel string) (string, bool) {
	discord, ok := m.toDiscord[strings.ToLower(ircChannel)]
	return discord, ok
}

// IRCChannels returns every mapped IRC channel, sorted.
func (m *ChannelMap) IRCChannels() []string {
	channels := make([]string, 0, len(m.toDiscord))
	for irc := range m.toDiscord {
		channels = append(channels, irc)
	}
	sort.Strings(channels)
	return channels
}

// GetJoinCommand produces a JOIN command for the raw configured mappings.
// Keyed channels are listed first so that keys line up with their channels.
func GetJoinCommand(in map[string]string) string {
	var channels, keyedChannels, keys []string

	raws := make([]string, 0, len(in))
	for _, raw := range in {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	seen := make(map[string]struct{}, len(in))
	for _, raw := range raws {
		channel, key := splitChannelKey(raw)
		if _, ok := seen[channel]; ok || channel == "" {
			continue
		}
		seen[channel] = struct{}{}

		if key != "" {
			keyedChannels = append(keyedChannels, channel)
			keys = append(keys, key)
		} else {
			channels = append(channels, channel)
		}
	}

	keyedChannels = append(keyedChannels, channels...)

	cmd := "JOIN " + strings.Join(keyedChannels, ",")
	if len(keys) > 0 {
		cmd += " " + strings.Join(keys, ",")
	}
	return cmd
}
