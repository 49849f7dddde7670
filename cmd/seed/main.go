package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"studiocatalog/internal/database"
	"studiocatalog/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "catalog.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.AdminUser{},
		&domain.Studio{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM studios")
	db.Exec("DELETE FROM admin_users")

	// ================== ADMIN ==================
	log.Println("Creating admin user...")

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	admin := domain.AdminUser{
		Email:        "admin@studiocatalog.az",
		PasswordHash: string(hash),
		Name:         "Administrator",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin:", err)
	}

	// ================== STUDIOS ==================
	log.Println("Creating sample studios...")

	studios := []domain.Studio{
		{
			Name:        "Studio Lumen",
			Address:     "Nizami küç. 12, Baku",
			Description: "Daylight studio with two shooting halls and a makeup room.",
			Price:       "0",
			Images:      []string{},
			Features:    []string{"Daylight", "Makeup room", "Backdrops"},
			Contact: domain.Contact{
				Phone:     "+994501234567",
				Instagram: "studio.lumen",
			},
		},
		{
			Name:        "Fotoloft 28",
			Address:     "28 May küç. 4, Baku",
			Description: "Loft interior, cyclorama, profoto lighting.",
			Price:       "0",
			Images:      []string{},
			Features:    []string{"Cyclorama", "Profoto", "Parking"},
			Contact: domain.Contact{
				Phone:    "+994559876543",
				Whatsapp: "+994559876543",
			},
		},
		{
			Name:        "Atelier Gilavar",
			Address:     "Füzuli küç. 59, Baku",
			Description: "Small portrait atelier near the city center.",
			Price:       "0",
			Images:      []string{},
			Features:    []string{"Portrait sets"},
			Contact: domain.Contact{
				Instagram: "atelier.gilavar",
				Email:     "hello@gilavar.az",
			},
		},
	}

	for i := range studios {
		if err := db.Create(&studios[i]).Error; err != nil {
			log.Fatal("failed to create studio:", err)
		}
	}

	log.Printf("Seed complete: 1 admin, %d studios", len(studios))
}
