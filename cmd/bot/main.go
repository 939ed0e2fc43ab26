package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
)

// A headless client: connects, spawns, and keeps attacking unclaimed land.
// Useful for smoke-testing a server and for generating recordings with
// real network traffic in them.
func main() {
	var (
		url    = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		id     = flag.String("id", "bot_1", "client id")
		name   = flag.String("name", "Bot One", "display name")
		tile   = flag.Int("tile", 0, "spawn tile index")
		troops = flag.Int64("troops", 500, "troops per attack")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.Hello{
		Type:     protocol.MsgHello,
		Version:  protocol.Version,
		ClientID: *id,
	}
	if err := conn.WriteJSON(hello); err != nil {
		logger.Fatalf("send HELLO: %v", err)
	}

	spawn := protocol.Intent{
		Type: protocol.IntentSpawn,
		Name: *name,
		Tile: *tile,
	}
	if err := conn.WriteJSON(spawn); err != nil {
		logger.Fatalf("send SPAWN: %v", err)
	}
	logger.Printf("spawning at tile %d", *tile)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	for {
		select {
		case <-stop:
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var env protocol.TurnEnvelope
		if err := json.Unmarshal(msg, &env); err != nil || env.Type != protocol.MsgTurn {
			continue
		}
		handleTurn(conn, logger, &env, *troops)
	}
}

func handleTurn(conn *websocket.Conn, logger *log.Logger, env *protocol.TurnEnvelope, troops int64) {
	if env.Turn.Number%100 == 0 && len(env.Digest) >= 12 {
		logger.Printf("turn=%d intents=%d digest=%s", env.Turn.Number, len(env.Turn.Intents), env.Digest[:12])
	}

	// Push into unclaimed land every few seconds. An empty target id means
	// terra nullius; the executor drops the order if we cannot afford it.
	if env.Turn.Number%60 == 55 {
		attack := protocol.Intent{
			Type:   protocol.IntentAttack,
			Troops: troops,
		}
		_ = conn.WriteJSON(attack)
	}
}
