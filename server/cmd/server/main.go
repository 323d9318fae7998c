package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/partyroom/assets"
	"github.com/automoto/partyroom/server/core"
	"github.com/automoto/partyroom/shared/netconfig"
	"github.com/automoto/partyroom/shared/protocol"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", netconfig.DefaultTickRate, "Server tick rate (snapshots per second)")
	name := flag.String("name", "Party Room Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	maxPlayers := flag.Int("max-players", netconfig.DefaultMaxPlayers, "Room size when the creator does not ask for one")
	capacity := flag.Int("capacity", 32, "Players this server advertises to the master")
	levelsDir := flag.String("levels", "", "Directory holding <level>.tmx files (empty = embedded levels)")
	level := flag.String("level", assets.DefaultLevel, "Level providing spawn points")
	masterURL := flag.String("master", "", "Master server URL (empty = no registration)")
	publicAddr := flag.String("public-addr", "", "Address clients should dial (default localhost:<port>)")
	region := flag.String("region", "", "Region advertised to the master")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	serverLevel, err := core.LoadServerLevel(*levelsDir, *level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	rooms := core.NewRoomManager(*version, *maxPlayers)
	server := core.NewServer(*tickRate, *name, rooms, serverLevel)

	var registration *core.Registration
	if *masterURL != "" {
		addr := *publicAddr
		if addr == "" {
			addr = fmt.Sprintf("localhost:%d", *port)
		}
		registration = core.NewRegistration(*masterURL, *name, addr, *version, *region, *capacity, server)
		registration.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if registration != nil {
			registration.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting party room server %q on port %d (tick rate: %d/s, version: %q, room size: %d)",
		*name, *port, *tickRate, *version, *maxPlayers)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
