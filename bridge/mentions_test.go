package bridge

import (
	"testing"

	"github.com/matterbridge/discordgo"
	"github.com/stretchr/testify/assert"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID: "1",
		Members: []*discordgo.Member{
			{User: &discordgo.User{ID: "100", Username: "Albert", Discriminator: "0001"}},
			{User: &discordgo.User{ID: "101", Username: "albert", Discriminator: "4242"}, Nick: "Al"},
			{User: &discordgo.User{ID: "102", Username: "carol", Discriminator: "1111"}, Nick: "Caz"},
			{User: &discordgo.User{ID: "103", Username: "dave", Discriminator: "2222"}},
		},
		Roles: []*discordgo.Role{
			{ID: "200", Name: "admins", Mentionable: true},
			{ID: "201", Name: "secret", Mentionable: false},
			{ID: "202", Name: "dave", Mentionable: true},
		},
		Emojis: []*discordgo.Emoji{
			{ID: "300", Name: "party", RequireColons: true},
			{ID: "301", Name: "dance", RequireColons: true, Animated: true},
			{ID: "302", Name: "plain", RequireColons: false},
		},
		Channels: []*discordgo.Channel{
			{ID: "400", Name: "general"},
		},
	}
}

type fakeChannels map[string]*discordgo.Channel

func (f fakeChannels) Channel(id string) (*discordgo.Channel, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, discordgo.ErrStateNotFound
}

func TestIRCToDiscord(t *testing.T) {
	guild := testGuild()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"username", "hi @carol", "hi <@102>"},
		{"nickname", "hi @Caz!", "hi <@102>!"},
		{"nickname preferred over username", "@Al", "<@101>"},
		{"exact case preferred", "@Albert", "<@100>"},
		{"exact case lower", "@albert", "<@101>"},
		{"case-insensitive", "@CAROL", "<@102>"},
		{"discriminator", "@albert#4242", "<@101>"},
		{"discriminator keeps trailing text", "@Albert#0001, hi", "<@100>, hi"},
		{"discriminator mismatch falls back", "@carol#9999", "<@102>#9999"},
		{"longest prefix", "@Albertina", "<@100>ina"},
		{"longest prefix exact case", "@albertina", "<@101>ina"},
		{"longer prefix wins", "@Alberto", "<@100>o"},
		{"prefix keeps punctuation", "@carol: hey", "<@102>: hey"},
		{"member before role", "@dave", "<@103>"},
		{"mentionable role", "@admins", "<@&200>"},
		{"role prefix", "@adminsss", "<@&200>ss"},
		{"unmentionable role", "@secret", "@secret"},
		{"unresolved", "@nobody here", "@nobody here"},
		{"several", "@carol and @dave", "<@102> and <@103>"},
		{"emoji", "yay :party:", "yay <:party:300>"},
		{"animated emoji", ":dance:", "<a:dance:301>"},
		{"emoji without colons", ":plain:", ":plain:"},
		{"unknown emoji", ":nope:", ":nope:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IRCToDiscord(tt.text, guild))
		})
	}
}

func TestIRCToDiscordNoGuild(t *testing.T) {
	assert.Equal(t, "@carol :party:", IRCToDiscord("@carol :party:", nil))
}

func TestDiscordToIRC(t *testing.T) {
	guild := testGuild()
	mentions := []*discordgo.User{
		guild.Members[1].User,
		{ID: "999", Username: "outsider"},
	}
	channels := fakeChannels{
		"401": {ID: "401", Name: "elsewhere"},
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"user mention uses nickname", "hi <@101>", "hi @Al"},
		{"nick mention form", "hi <@!101>", "hi @Al"},
		{"user outside guild", "<@999>", "@outsider"},
		{"unlisted user untouched", "<@103>", "<@103>"},
		{"newlines", "one\ntwo\r\nthree\rfour", "one two three four"},
		{"channel", "see <#400>", "see #general"},
		{"channel from lookup", "see <#401>", "see #elsewhere"},
		{"deleted channel", "see <#402>", "see #deleted-channel"},
		{"role", "ping <@&200>", "ping @admins"},
		{"deleted role", "ping <@&299>", "ping @deleted-role"},
		{"emoji", "nice <:party:300>", "nice :party:"},
		{"animated emoji", "<a:dance:301>!", ":dance:!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscordToIRC(tt.content, mentions, guild, channels))
		})
	}
}

func TestDisplayName(t *testing.T) {
	guild := testGuild()

	assert.Equal(t, "Al", DisplayName(guild.Members[1].User, guild))
	assert.Equal(t, "Albert", DisplayName(guild.Members[0].User, guild))
	assert.Equal(t, "ghost", DisplayName(&discordgo.User{ID: "5", Username: "ghost"}, guild))
	assert.Equal(t, "ghost", DisplayName(&discordgo.User{ID: "5", Username: "ghost"}, nil))
}

func TestIRCToDiscordLongestPrefix(t *testing.T) {
	guild := &discordgo.Guild{
		Members: []*discordgo.Member{
			{User: &discordgo.User{ID: "1", Username: "Al"}},
			{User: &discordgo.User{ID: "2", Username: "Albert"}},
		},
	}

	assert.Equal(t, "<@2>ina", IRCToDiscord("@albertina", guild))
	assert.Equal(t, "<@1>an", IRCToDiscord("@alan", guild))
}

func TestIRCToDiscordDiscriminatorWins(t *testing.T) {
	guild := &discordgo.Guild{
		Members: []*discordgo.Member{
			{User: &discordgo.User{ID: "1", Username: "zed", Discriminator: "0001"}, Nick: "bob"},
			{User: &discordgo.User{ID: "2", Username: "Bob", Discriminator: "0002"}},
		},
	}

	assert.Equal(t, "<@2>", IRCToDiscord("@bob#0002", guild))
	assert.Equal(t, "<@1>#0003", IRCToDiscord("@bob#0003", guild))
}
