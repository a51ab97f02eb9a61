package main

import (
	"fmt"
	"net/http"
	"time"

	"aswcluster/internal/api"
)

func main() {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", 8080),
		Handler:           api.Router(),
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := httpServer.ListenAndServe(); err != nil {
		panic(err)
	}
}
