package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Rakhulsr/go-catalog-admin/app/cmd"
	"github.com/Rakhulsr/go-catalog-admin/app/configs"
	"github.com/Rakhulsr/go-catalog-admin/app/routes"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	env := configs.LoadENV

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		log.Fatalf("Session keys: %v. Run `generate-keys` and copy them into .env.", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router := routes.NewRouter(db, env, keys)

	server := http.Server{
		Addr:    env.Port,
		Handler: routes.NewHandler(router, env, keys),
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
