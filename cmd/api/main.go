// Package main Prep Kingdom API
//
// Prep Kingdom is a gamified exam-preparation backend. Students earn
// coins and crystals from their kingdom's buildings, which generate
// treasure over time, and spend them on building upgrades:
//
//  1. A castle per student and a village per study subject, each bound
//     to a tier in the building catalog and accruing treasure lazily.
//
//  2. An append-only wallet ledger holding every coin and crystal
//     movement; balances are derived by summation.
//
//     Schemes: http, https
//     Host: localhost:8080
//     BasePath: /api/v1
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
package main

import (
	"context"

	"github.com/prepkingdom/kingdom-api/internal/app"
)

// @title Prep Kingdom API Service
// @version 1.0
// @description Prep Kingdom is a gamified exam-preparation backend where students earn treasure from their kingdom and spend it on building upgrades.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
