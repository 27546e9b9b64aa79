package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/huyqng/battleship-server/api"
	"github.com/huyqng/battleship-server/game"
	"github.com/huyqng/battleship-server/history"
	"github.com/huyqng/battleship-server/token"
	"github.com/huyqng/battleship-server/util"
	"github.com/huyqng/battleship-server/ws"
)

func main() {
	util.InitValidator()

	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal(err)
	}

	maker, err := token.NewPasetoMaker(config.TokenKey)

	if err != nil {
		log.Fatal(err)
	}

	// match history is optional; without redis the server still runs, it
	// just forgets finished games
	var recorder history.Recorder = history.NewNopRecorder()

	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       0,
		})

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal(err)
		}

		recorder = history.NewRedisRecorder(rdb)
	}

	policy := game.RejectRepeat
	if config.RepeatShotPolicy == util.RepeatShotAllow {
		policy = game.AllowRepeat
	}

	manager := ws.NewManager(maker, policy, recorder)
	server := api.NewServer(config, manager, maker, recorder)

	slog.Info("server listening", "port", config.Port, "repeat_shot_policy", config.RepeatShotPolicy)

	log.Fatal(server.Start())
}
