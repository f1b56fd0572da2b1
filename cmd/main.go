package main

import (
	"log"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/routes"
	"github.com/NasiChan/lab2life-webapp/scheduler"
	"github.com/NasiChan/lab2life-webapp/services"
	"github.com/NasiChan/lab2life-webapp/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Println("push service disabled:", err)
		push = nil
	}
	services.InitNotificationDeps(config.DB, hub, push)

	if _, err := scheduler.Start(config.DB); err != nil {
		log.Fatalf("scheduler failed to start: %v", err)
	}

	r := routes.SetupRouter(routes.Deps{
		AI:   services.NewAIService(),
		Hub:  hub,
		Push: push,
	})
	r.Run(":8080")
}
