package commands

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Shrug is the reply to the shrug command.
const Shrug = `¯\_(ツ)_/¯`

// A Sender identifies who issued a command. Names holds every name the
// sender is known by, e.g. a Discord username and user ID.
type Sender struct {
	Side  Side
	Names []string
}

// Handler runs the commands built into the bridge.
type Handler struct {
	store *Store
	log   *log.Entry
}

// NewHandler returns a Handler managing the lists in store.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store: store,
		log:   log.WithField("prefix", "commands"),
	}
}

// Run executes cmd if it is a built-in command, sending responses with reply.
// It returns false for any other command, which should then be forwarded.
func (h *Handler) Run(cmd Command, from Sender, reply func(text string)) bool {
	switch cmd.Name {
	case "shrug":
		reply(Shrug)
	case "help":
		reply("Commands: help, shrug, list admin|ignore, admin add|rm <users>, ignore add|rm irc|discord <users>")
	case "list":
		h.list(cmd.Args, reply)
	case "admin":
		if h.authorise(from, reply) {
			h.admin(cmd.Args, reply)
		}
	case "ignore":
		if h.authorise(from, reply) {
			h.ignore(cmd.Args, reply)
		}
	default:
		return false
	}
	return true
}

func (h *Handler) authorise(from Sender, reply func(string)) bool {
	if h.store.IsAdmin(from.Names...) {
		return true
	}

	h.log.WithFields(log.Fields{
		"side":  from.Side,
		"names": from.Names,
	}).Warnln("Refused command from non-admin")
	reply("You are not an admin.")
	return false
}

func (h *Handler) list(args []string, reply func(string)) {
	if len(args) == 0 {
		reply("Usage: list admin|ignore")
		return
	}

	switch args[0] {
	case "admin":
		reply("admin: " + strings.Join(h.store.Admins(), ", "))
	case "ignore":
		reply("irc: " + strings.Join(h.store.Ignored(IRC), ", "))
		reply("discord: " + strings.Join(h.store.Ignored(Discord), ", "))
	default:
		reply("Usage: list admin|ignore")
	}
}

func (h *Handler) admin(args []string, reply func(string)) {
	if len(args) < 2 || (args[0] != "add" && args[0] != "rm") {
		reply("Usage: admin add|rm <users>")
		return
	}

	for _, name := range args[1:] {
		if args[0] == "add" {
			h.store.AddAdmin(name)
		} else {
			h.store.RemoveAdmin(name)
		}
	}
	h.save(reply)
}

func (h *Handler) ignore(args []string, reply func(string)) {
	if len(args) < 3 || (args[0] != "add" && args[0] != "rm") {
		reply("Usage: ignore add|rm irc|discord <users>")
		return
	}

	side, ok := ParseSide(args[1])
	if !ok {
		reply("Usage: ignore add|rm irc|discord <users>")
		return
	}

	for _, name := range args[2:] {
		if args[0] == "add" {
			h.store.Ignore(side, name)
		} else {
			h.store.Unignore(side, name)
		}
	}
	h.save(reply)
}

func (h *Handler) save(reply func(string)) {
	if err := h.store.Save(); err != nil {
		h.log.WithError(err).Errorln("could not save lists")
		reply("Could not save lists.")
		return
	}
	reply("Done.")
}
