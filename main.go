package main

import (
	"github.com/foliohq/folio/config"
	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/routes"
	"github.com/foliohq/folio/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Project{},
		&models.Skill{},
		&models.Service{},
		&models.Technology{},
		&models.Post{},
		&models.Category{},
		&models.Tag{},
		&models.ContactMessage{},
	)

	// Seed the first admin account when the users table is empty
	if err := models.EnsureAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.Sugar.Warnf("admin bootstrap skipped: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
