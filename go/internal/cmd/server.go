package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jv-albuquerque/cooldown/go/internal/config"
	"github.com/jv-albuquerque/cooldown/go/internal/gateway"
)

func setupServer(services *Services, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Gateway.Port),
		Handler:     services.Gateway.Handler(gateway.DefaultConfig()),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
}
