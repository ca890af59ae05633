package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/growoff/growoff-api/cmd/app"
)

// @contact.name   Grow-Off Support
// @contact.email  tech@grow-off.app
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
