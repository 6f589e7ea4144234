package main

import (
	"fmt"

	"github.com/decentraland/bevy-explorer-sub002/pkg/config"
	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
	"github.com/decentraland/bevy-explorer-sub002/pkg/protocol"
	"github.com/decentraland/bevy-explorer-sub002/pkg/scene"
	"github.com/decentraland/bevy-explorer-sub002/pkg/util/logging"
)

func main() {
	cfg, err := config.Read("cmd/config.yaml")
	if err != nil {
		panic(err)
	}
	cfg.PopulateDefaults()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	logging.Init(cfg.Logging.Level)

	s := scene.New(cfg.Scene)
	err = s.Enqueue(protocol.Message{
		Type:      protocol.PutComponent,
		Entity:    crdt.NewEntity(crdt.ReservedSlots, 0),
		Component: crdt.ComponentTransform,
		Kind:      crdt.KindLwwEntity,
		Timestamp: 1,
		Payload:   protocol.EncodeTransform(protocol.DefaultTransform()),
	})
	if err != nil {
		panic(err)
	}

	result := s.Tick()
	fmt.Printf("scene %s: %d lifecycle events, %d components changed\n",
		s.ID, len(result.Events), len(result.Updates.LWW))
}
