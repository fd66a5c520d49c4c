package database

import (
	"log"

	"wasabi-backend/internal/config"
	"wasabi-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Departamento{},
		&models.Proveedor{},
		&models.Usuario{},
		&models.Orden{},
		&models.Bolsa{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	// Aviso de bootstrap: sin administrador no se puede crear nada más
	var admins int64
	DB.Model(&models.Usuario{}).
		Where("rol = ?", models.RolAdministrador).
		Count(&admins)
	if admins == 0 {
		log.Println("[WARN] No existe ningún usuario Administrador; usa /api/auth/register-admin para crear el primero.")
	}

	log.Println("Conexión a base de datos correcta. Migración completada.")
}
