package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/ircbridge/discord-irc/bridge"
	"github.com/ircbridge/discord-irc/config"
	prefixed "github.com/matterbridge/logrus-prefixed-formatter"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	configFile := flag.String("config", "", "Config file to read configuration stuff from")
	debugMode := flag.Bool("debug", false, "Debug mode? (false = use value from settings)")
	notls := flag.Bool("no-tls", false, "Avoids using TLS at all when connecting to IRC server")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification? (INSECURE MODE) (false = use value from settings)")

	flag.Parse()

	log.SetFormatter(&prefixed.TextFormatter{
		PrefixPadding: 10,
		FullTimestamp: true,
	})

	if *configFile == "" {
		log.Fatalln("--config argument is required!")
		return
	}

	log.WithField("config", *configFile).Infoln("Loading configuration...")

	v, err := config.Load(*configFile)
	if err != nil {
		log.Fatalln(err)
	}

	conf, err := config.Bridge(v)
	if err != nil {
		log.WithField("error", err).Fatalln("Configuration is invalid.")
		return
	}

	// Flags only ever turn these on
	conf.Debug = conf.Debug || *debugMode
	conf.NoTLS = conf.NoTLS || *notls
	conf.InsecureSkipVerify = conf.InsecureSkipVerify || *insecure

	SetLogDebug(conf.Debug)

	dib, err := bridge.New(conf)
	if err != nil {
		log.WithField("error", err).Fatalln("Go-Discord-IRC failed to initialise.")
		return
	}

	// Create new signal receiver
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	// Open the bot
	err = dib.Open()
	if err != nil {
		log.WithField("error", err).Fatalln("Go-Discord-IRC failed to start.")
		return
	}

	// Inform the user that things are happening!
	log.Infoln("Go-Discord-IRC is now running. Press Ctrl-C to exit.")

	// Start watching for live changes...
	v.OnConfigChange(func(e fsnotify.Event) {
		log.WithField("file", e.Name).Infoln("Configuration file has changed!")

		if debug := v.GetBool("debug") || *debugMode; dib.Debug() != debug {
			log.Infof("Debug changed from %+v to %+v", !debug, debug)
			dib.SetDebugMode(debug)
			SetLogDebug(debug)
		}
	})

	// Watch for a shutdown signal
	<-sc

	log.Infoln("Shutting down Go-Discord-IRC...")

	// Cleanly close down the bridge.
	dib.Close()
}

func SetLogDebug(debug bool) {
	logger := log.StandardLogger()
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}
