package bridge

import (
	"regexp"
	"strings"

	"github.com/matterbridge/discordgo"
	log "github.com/sirupsen/logrus"
)

// ChannelLookup finds Discord channels by ID. *discordgo.State satisfies it.
type ChannelLookup interface {
	Channel(channelID string) (*discordgo.Channel, error)
}

var (
	newlineRegex        = regexp.MustCompile(`\r\n|\n|\r`)
	channelMentionRegex = regexp.MustCompile(`<#(\d+)>`)
	roleMentionRegex    = regexp.MustCompile(`<@&(\d+)>`)
	customEmojiRegex    = regexp.MustCompile(`<a?(:\w+:)\d+>`)
	ircMentionRegex     = regexp.MustCompile(`@([^\s]+)`)
	discriminatorRegex  = regexp.MustCompile(`^([^\s#]+)#(\d+)`)
	ircEmojiRegex       = regexp.MustCompile(`:(\w+):`)
)

const (
	deletedChannelText = "#deleted-channel"
	deletedRoleText    = "@deleted-role"
)

// GetMemberNick returns the guild nickname of a member, or their username.
func GetMemberNick(m *discordgo.Member) string {
	if m.Nick != "" || m.User == nil {
		return m.Nick
	}
	return m.User.Username
}

// DisplayName returns the name user goes by in guild.
func DisplayName(user *discordgo.User, guild *discordgo.Guild) string {
	if guild != nil {
		for _, m := range guild.Members {
			if m.User != nil && m.User.ID == user.ID {
				return GetMemberNick(m)
			}
		}
	}
	return user.Username
}

// DiscordToIRC rewrites Discord references in content into plain text.
//
// User mentions become "@nickname", role mentions "@role", channel mentions
// "#channel" and custom emoji ":name:". Line breaks are collapsed to spaces.
func DiscordToIRC(content string, mentions []*discordgo.User, guild *discordgo.Guild, channels ChannelLookup) string {
	for _, user := range mentions {
		name := "@" + DisplayName(user, guild)
		content = strings.ReplaceAll(content, "<@"+user.ID+">", name)
		content = strings.ReplaceAll(content, "<@!"+user.ID+">", name)
	}

	content = newlineRegex.ReplaceAllString(content, " ")

	content = channelMentionRegex.ReplaceAllStringFunc(content, func(match string) string {
		id := match[2 : len(match)-1]
		if c := findChannel(id, guild, channels); c != nil {
			return "#" + c.Name
		}

		log.WithField("channel", id).Debugln("Mentioned channel does not exist")
		return deletedChannelText
	})

	content = roleMentionRegex.ReplaceAllStringFunc(content, func(match string) string {
		id := match[3 : len(match)-1]
		if guild != nil {
			for _, r := range guild.Roles {
				if r.ID == id {
					return "@" + r.Name
				}
			}
		}

		log.WithField("role", id).Debugln("Mentioned role does not exist")
		return deletedRoleText
	})

	return customEmojiRegex.ReplaceAllString(content, "$1")
}

func findChannel(id string, guild *discordgo.Guild, channels ChannelLookup) *discordgo.Channel {
	if guild != nil {
		for _, c := range guild.Channels {
			if c.ID == id {
				return c
			}
		}
	}

	if channels != nil {
		if c, err := channels.Channel(id); err == nil && c != nil {
			return c
		}
	}

	return nil
}

// IRCToDiscord turns "@name" and ":emoji:" references in text into Discord
// mentions, using the members, roles and emoji of guild.
//
// A reference resolves, in order, to the member with that username#discriminator,
// the member with that nickname, the member with that username, or the
// mentionable role with that name, all case-insensitively. Failing those, the
// longest member or role name that prefixes the reference wins and the rest
// of the reference is kept after the mention. Unresolved references are left
// untouched.
func IRCToDiscord(text string, guild *discordgo.Guild) string {
	if guild == nil {
		return text
	}

	text = ircMentionRegex.ReplaceAllStringFunc(text, func(match string) string {
		if mention, ok := resolveMention(match[1:], guild); ok {
			return mention
		}

		log.WithField("reference", match).Debugln("Could not resolve mention")
		return match
	})

	return ircEmojiRegex.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		for _, e := range guild.Emojis {
			if e.Name == name && e.RequireColons {
				return emojiMention(e)
			}
		}
		return match
	})
}

func resolveMention(ref string, guild *discordgo.Guild) (string, bool) {
	// @username#1234
	if m := discriminatorRegex.FindStringSubmatch(ref); m != nil {
		for _, member := range guild.Members {
			if member.User != nil &&
				strings.EqualFold(member.User.Username, m[1]) &&
				member.User.Discriminator == m[2] {
				return userMention(member.User.ID) + ref[len(m[0]):], true
			}
		}
	}

	exact := []func() []candidate{
		func() []candidate { return memberCandidates(guild, true, false) },
		func() []candidate { return memberCandidates(guild, false, true) },
		func() []candidate { return roleCandidates(guild) },
	}
	for _, candidates := range exact {
		if best := bestExact(ref, candidates()); best != nil {
			return best.mention, true
		}
	}

	// No exact match, so look for the longest name prefixing the reference.
	all := append(memberCandidates(guild, true, true), roleCandidates(guild)...)
	if best, length := bestPrefix(ref, all); best != nil {
		return best.mention + string([]rune(ref)[length:]), true
	}

	return "", false
}

// A candidate is a name that a reference may resolve to.
type candidate struct {
	name    string
	mention string
	id      string
	role    bool
}

// memberCandidates lists guild members by nickname and/or username.
func memberCandidates(guild *discordgo.Guild, nicks, usernames bool) (c []candidate) {
	for _, m := range guild.Members {
		if m.User == nil {
			continue
		}
		mention := userMention(m.User.ID)
		if nicks && m.Nick != "" {
			c = append(c, candidate{name: m.Nick, mention: mention, id: m.User.ID})
		}
		if usernames && m.User.Username != "" {
			c = append(c, candidate{name: m.User.Username, mention: mention, id: m.User.ID})
		}
	}
	return
}

func roleCandidates(guild *discordgo.Guild) (c []candidate) {
	for _, r := range guild.Roles {
		if !r.Mentionable || r.Name == "" {
			continue
		}
		c = append(c, candidate{name: r.Name, mention: "<@&" + r.ID + ">", id: r.ID, role: true})
	}
	return
}

// bestExact returns the candidate whose name equals ref case-insensitively,
// preferring an exact case match.
func bestExact(ref string, candidates []candidate) *candidate {
	var best *candidate
	bestCase := false
	for i := range candidates {
		c := &candidates[i]
		if !strings.EqualFold(c.name, ref) {
			continue
		}

		caseMatch := c.name == ref
		if best == nil || (caseMatch && !bestCase) || (caseMatch == bestCase && c.before(best)) {
			best, bestCase = c, caseMatch
		}
	}
	return best
}

// bestPrefix returns the candidate with the longest name that prefixes ref
// case-insensitively, along with that length in runes. On equal lengths an
// exact case match wins.
func bestPrefix(ref string, candidates []candidate) (*candidate, int) {
	refRunes := []rune(ref)

	var best *candidate
	bestLen, bestCase := 0, false
	for i := range candidates {
		c := &candidates[i]
		nameLen := len([]rune(c.name))
		if nameLen == 0 || nameLen > len(refRunes) || nameLen < bestLen {
			continue
		}

		prefix := string(refRunes[:nameLen])
		if !strings.EqualFold(prefix, c.name) {
			continue
		}

		caseMatch := prefix == c.name
		switch {
		case nameLen > bestLen,
			caseMatch && !bestCase,
			caseMatch == bestCase && c.before(best):
			best, bestLen, bestCase = c, nameLen, caseMatch
		}
	}
	return best, bestLen
}

// before orders otherwise equal candidates: members before roles, then by
// ascending snowflake.
func (c *candidate) before(other *candidate) bool {
	if other == nil {
		return true
	}
	if c.role != other.role {
		return !c.role
	}
	if len(c.id) != len(other.id) {
		return len(c.id) < len(other.id)
	}
	return c.id < other.id
}

func userMention(id string) string {
	return "<@" + id + ">"
}

func emojiMention(e *discordgo.Emoji) string {
	prefix := "<:"
	if e.Animated {
		prefix = "<a:"
	}
	return prefix + e.Name + ":" + e.ID + ">"
}
