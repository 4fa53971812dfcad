// Package dstate provides helpers for discordgo that first try the State,
// and then fall back on an endpoint request.
package dstate

import "github.com/matterbridge/discordgo"

// Channel returns a channel from the State, or from the API if it is not cached.
func Channel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	if c, err := s.State.Channel(channelID); err == nil {
		return c, nil
	}

	return s.Channel(channelID)
}

// Guild returns a guild from the State, or from the API if it is not cached.
func Guild(s *discordgo.Session, guildID string) (*discordgo.Guild, error) {
	if g, err := s.State.Guild(guildID); err == nil {
		return g, nil
	}

	return s.Guild(guildID)
}

// Snapshot returns a copy of a cached guild. Its members, roles, emoji and
// channels are copied too, since discordgo updates them in place.
func Snapshot(s *discordgo.Session, guildID string) (*discordgo.Guild, error) {
	s.State.RLock()
	defer s.State.RUnlock()

	for _, g := range s.State.Guilds {
		if g.ID != guildID {
			continue
		}

		snapshot := *g

		snapshot.Members = make([]*discordgo.Member, len(g.Members))
		for i, m := range g.Members {
			mc := *m
			if m.User != nil {
				user := *m.User
				mc.User = &user
			}
			snapshot.Members[i] = &mc
		}

		snapshot.Roles = make([]*discordgo.Role, len(g.Roles))
		for i, r := range g.Roles {
			rc := *r
			snapshot.Roles[i] = &rc
		}

		snapshot.Emojis = make([]*discordgo.Emoji, len(g.Emojis))
		for i, e := range g.Emojis {
			ec := *e
			snapshot.Emojis[i] = &ec
		}

		snapshot.Channels = make([]*discordgo.Channel, len(g.Channels))
		for i, c := range g.Channels {
			cc := *c
			snapshot.Channels[i] = &cc
		}

		return &snapshot, nil
	}

	return nil, discordgo.ErrStateNotFound
}
