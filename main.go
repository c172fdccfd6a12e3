package main

import (
	"counsel-api/core/logger"
	"counsel-api/core/server"
)

// @title Counsel API
// @version 1.0
// @description Availability and booking synchronization between the meeting provider and the counselor calendar.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
