// Package config reads the bridge configuration with viper.
package config

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/ircbridge/discord-irc/bridge"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables overriding configuration
// keys, i.e. DISCORD_IRC_DISCORD_TOKEN.
const EnvPrefix = "discord_irc"

// Load reads the configuration file at path. Values may be overridden by
// environment variables, and the file is watched for changes.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	// use environment variables
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "could not read config")
	}

	// reload config on file changes
	v.WatchConfig()

	return v, nil
}

// SetDefaults registers the default value of every optional key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("irc_nick_color", true)
	v.SetDefault("command_characters", []string{})

	v.SetDefault("format.irc_text", bridge.DefaultIRCTextFormat)
	v.SetDefault("format.url_attachment", bridge.DefaultURLAttachmentFormat)
	v.SetDefault("format.command_prelude", bridge.DefaultCommandPreludeFormat)
	v.SetDefault("format.discord", bridge.DefaultDiscordFormat)
}

// Bridge builds the bridge configuration held by v.
// The result has not been validated; bridge.New does that.
func Bridge(v *viper.Viper) (*bridge.Config, error) {
	conf := &bridge.Config{
		DiscordBotToken: v.GetString("discord_token"),             // Discord Bot User Token
		GuildID:         v.GetString("guild_id"),                  // Guild used for "#name" channels
		ChannelMappings: v.GetStringMapString("channel_mappings"), // Discord:IRC mappings

		IRCServer:     v.GetString("irc_server"), // Server address to use, example `irc.libera.chat:6697`.
		IRCServerPass: v.GetString("irc_pass"),   // Optional password for connecting to the IRC server
		Nickname:      v.GetString("nickname"),

		NoTLS:              v.GetBool("no_tls"),
		InsecureSkipVerify: v.GetBool("insecure"),

		CommandCharacters: v.GetStringSlice("command_characters"),
		CommandResponses:  v.GetStringMapString("command_responses"),
		CommandHandler:    v.GetBool("command_handler"),
		Admins:            v.GetStringSlice("admins"),
		ListsFile:         v.GetString("lists_file"),

		IRCNickColor:     v.GetBool("irc_nick_color"),
		IRCStatusNotices: v.GetBool("irc_status_notices"),
		AnnounceSelfJoin: v.GetBool("announce_self_join"),

		Format: bridge.Format{
			IRCText:        v.GetString("format.irc_text"),
			URLAttachment:  v.GetString("format.url_attachment"),
			Discord:        v.GetString("format.discord"),
			CommandPrelude: v.GetString("format.command_prelude"),
		},

		Debug: v.GetBool("debug"),
	}

	if err := v.UnmarshalKey("auto_send_commands", &conf.AutoSendCommands); err != nil {
		return nil, errors.Wrap(err, "auto_send_commands")
	}

	var err error
	if conf.IRCIgnores, err = compileGlobs(v.GetStringSlice("ignored_users.irc")); err != nil {
		return nil, errors.Wrap(err, "ignored_users.irc")
	}
	if conf.DiscordIgnores, err = compileGlobs(v.GetStringSlice("ignored_users.discord")); err != nil {
		return nil, errors.Wrap(err, "ignored_users.discord")
	}

	return conf, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", p)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
