package main

import (
	"context"
	"net/http"

	"coordinate-converter/internal/config"
	"coordinate-converter/internal/handler"
	"coordinate-converter/internal/repository"
	"coordinate-converter/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	lookupService := service.NewAddressLookupService(repo)
	addressHandler := handler.NewAddressHandler(lookupService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/addresses", addressHandler.Lookup)
	r.GET("/addresses/search", addressHandler.Search)

	r.Run(config.ServerAddress)
}
