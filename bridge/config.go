package bridge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
)

// Config to be passed to New
type Config struct {
	DiscordBotToken string
	GuildID         string // optional, restricts "#name" channel lookups to one guild

	// Map from Discord channel (ID or "#name") to IRC channel, which may
	// be followed by a channel key, i.e. "#irc key".
	ChannelMappings map[string]string

	IRCServer     string
	IRCServerPass string
	Nickname      string

	// NoTLS controls whether to use TLS at all when connecting to the IRC server
	NoTLS bool

	// InsecureSkipVerify controls whether a client verifies the
	// server's certificate chain and host name.
	// This should be used only for testing.
	InsecureSkipVerify bool

	// CommandCharacters are the characters that mark a message as a command
	CommandCharacters []string

	// CommandResponses maps the full text of a command to a canned reply,
	// sent back on the side the command came from.
	CommandResponses map[string]string

	// CommandHandler enables the built-in commands (shrug, list, admin, ignore)
	CommandHandler bool
	Admins         []string // initial admins for the built-in commands
	ListsFile      string   // where admin and ignore lists are kept, if anywhere

	// IRCNickColor colours Discord nicknames on IRC
	IRCNickColor bool

	// IRCStatusNotices relays joins, parts, quits and nick changes to Discord
	IRCStatusNotices bool

	// AnnounceSelfJoin also relays the bridge's own joins
	AnnounceSelfJoin bool

	Format Format

	// AutoSendCommands are sent to the IRC server once registered,
	// one command per entry, i.e. ["PRIVMSG", "NickServ", "IDENTIFY pass"]
	AutoSendCommands [][]string

	IRCIgnores     []glob.Glob // matched against nick!user@host
	DiscordIgnores []glob.Glob // matched against user IDs and username#discriminator

	Debug bool
}

// A ConfigurationError describes a single invalid configuration field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks that every required field is present and that the channel
// mappings are well formed. All problems are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	required := []struct {
		field string
		value string
	}{
		{"irc_server", c.IRCServer},
		{"nickname", c.Nickname},
		{"discord_token", c.DiscordBotToken},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			result = multierror.Append(result, &ConfigurationError{r.field, "missing configuration field"})
		}
	}

	if len(c.ChannelMappings) == 0 {
		result = multierror.Append(result, &ConfigurationError{"channel_mappings", "missing configuration field"})
	}

	discordRefs := make([]string, 0, len(c.ChannelMappings))
	for discord := range c.ChannelMappings {
		discordRefs = append(discordRefs, discord)
	}
	sort.Strings(discordRefs)

	for _, discord := range discordRefs {
		if err := validateMapping(discord, c.ChannelMappings[discord]); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func validateMapping(discord, irc string) error {
	field := "channel_mappings." + discord
	if strings.TrimSpace(discord) == "" {
		return &ConfigurationError{"channel_mappings", "empty Discord channel"}
	}

	parts := strings.Fields(irc)
	switch {
	case len(parts) == 0:
		return &ConfigurationError{field, "empty IRC channel"}
	case len(parts) > 2:
		return &ConfigurationError{field, "expected \"#channel\" or \"#channel key\""}
	case !strings.ContainsRune("#&+!", rune(parts[0][0])):
		return &ConfigurationError{field, fmt.Sprintf("%q is not an IRC channel", parts[0])}
	}
	return nil
}
