package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/utils"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds the Herbsera catalog and an admin account.
// Usage: go run ./cmd/seed
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME skip the prompts.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("HERBSERA - Catalog and Admin Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitLogger(os.Getenv("APP_ENV"))
	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	created, skipped, err := seedProducts(config.DB)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("✓ Products: %d created, %d already present", created, skipped)

	email, password, name := getAdminCredentials()
	admin, err := seedAdmin(config.DB, email, password, name)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Seed complete")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("Admin ID:    %s\n", admin.ID)
	fmt.Printf("Admin Email: %s\n", admin.Email)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the API server: go run .")
	fmt.Println("2. Login at POST /api/auth/login with the admin email and password")
	fmt.Println()
}

func seedProducts(db *gorm.DB) (created, skipped int, err error) {
	for _, p := range catalog() {
		var existing models.Product
		err := db.Unscoped().Where("slug = ?", p.Slug).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, err
		}
		if err := db.Create(&p).Error; err != nil {
			return created, skipped, fmt.Errorf("create %s: %w", p.Slug, err)
		}
		created++
	}
	return created, skipped, nil
}

// seedAdmin creates the admin or promotes an existing account with that email.
func seedAdmin(db *gorm.DB, email, password, name string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		log.Printf("✓ Account '%s' exists, promoting to admin", email)
		err = db.Model(&user).Updates(map[string]any{
			"role":          models.RoleAdmin,
			"is_active":     true,
			"password_hash": string(hash),
		}).Error
		return &user, err
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:        email,
			DisplayName:  name,
			Role:         models.RoleAdmin,
			Provider:     models.ProviderPassword,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		return &user, db.Create(&user).Error
	default:
		return nil, err
	}
}

// getAdminCredentials reads the environment, prompting for anything missing
func getAdminCredentials() (email, password, name string) {
	email = strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password = os.Getenv("ADMIN_PASSWORD")
	name = os.Getenv("ADMIN_NAME")

	if email == "" || password == "" {
		fmt.Println("Enter Admin Details:")
		fmt.Println()
	}

	for email == "" {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			fmt.Println("❌ Email cannot be empty")
		}
	}

	for len(password) < 8 {
		fmt.Print("Password (min 8 characters): ")
		fmt.Scanln(&password)
		if len(password) < 8 {
			fmt.Println("❌ Password must be at least 8 characters")
		}
	}

	if name == "" {
		name = "Herbsera Admin"
	}
	return email, password, name
}

func product(name, category, benefit string, price float64, compare float64, stock int, featured bool, weight models.ProductWeight, ingredients []models.Ingredient, tags ...string) models.Product {
	p := models.Product{
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: benefit + ". Handmade in small batches with cold-processed botanicals.",
		Benefit:     benefit,
		Price:       price,
		Category:    category,
		Stock:       stock,
		Featured:    featured,
		IsActive:    true,
		Images: datatypes.JSONSlice[models.ProductImage]{
			{URL: "https://res.cloudinary.com/herbsera/image/upload/products/" + utils.Slugify(name) + ".jpg", Alt: name},
		},
		Ingredients: ingredients,
		Benefits:    datatypes.JSONSlice[string]{benefit},
		Weight:      weight,
		Tags:        tags,
		Usage:       "Patch test before first use. For external use only.",
	}
	if compare > price {
		p.ComparePrice = &compare
	}
	sku := "HB-" + strings.ToUpper(category[:3]) + "-" + strings.ToUpper(utils.Slugify(name))
	if len(sku) > 64 {
		sku = sku[:64]
	}
	p.SKU = &sku
	return p
}

func catalog() []models.Product {
	g := func(v float64) models.ProductWeight { return models.ProductWeight{Value: v, Unit: "g"} }
	ml := func(v float64) models.ProductWeight { return models.ProductWeight{Value: v, Unit: "ml"} }

	return []models.Product{
		product("Neem Tulsi Soap", "soap", "Clears acne-prone skin", 249, 299, 120, true, g(100),
			[]models.Ingredient{{Name: "Neem", Percentage: 12, Benefits: "Antibacterial"}, {Name: "Tulsi", Percentage: 8, Benefits: "Soothing"}},
			"acne", "oily-skin"),
		product("Turmeric Saffron Soap", "soap", "Brightens dull skin", 299, 0, 90, false, g(100),
			[]models.Ingredient{{Name: "Turmeric", Percentage: 10, Benefits: "Brightening"}, {Name: "Saffron", Percentage: 1, Benefits: "Even tone"}},
			"glow"),
		product("Kumkumadi Face Oil", "oil", "Fades pigmentation overnight", 899, 1099, 45, true, ml(30),
			[]models.Ingredient{{Name: "Saffron", Percentage: 2, Benefits: "Radiance"}, {Name: "Sandalwood", Percentage: 5, Benefits: "Calming"}},
			"night-care", "pigmentation"),
		product("Bhringraj Hair Oil", "oil", "Strengthens roots and reduces hair fall", 549, 0, 60, false, ml(100),
			[]models.Ingredient{{Name: "Bhringraj", Percentage: 15, Benefits: "Hair growth"}, {Name: "Coconut oil", Percentage: 70, Benefits: "Nourishing"}},
			"hair"),
		product("Aloe Rose Day Cream", "cream", "Lightweight all-day hydration", 649, 749, 70, true, g(50),
			[]models.Ingredient{{Name: "Aloe vera", Percentage: 30, Benefits: "Hydration"}, {Name: "Rose water", Percentage: 20, Benefits: "Toning"}},
			"dry-skin"),
		product("Vitamin C Glow Serum", "serum", "Boosts radiance and evens tone", 799, 0, 8, true, ml(30),
			[]models.Ingredient{{Name: "Ascorbic acid", Percentage: 10, Benefits: "Antioxidant"}},
			"glow", "vitamin-c"),
		product("Multani Mitti Face Pack", "powder", "Deep cleans and tightens pores", 199, 0, 150, false, g(100),
			[]models.Ingredient{{Name: "Fuller's earth", Percentage: 80, Benefits: "Oil control"}},
			"oily-skin"),
		product("Ubtan Cleansing Powder", "cleanser", "Gentle exfoliating cleanse", 349, 399, 40, false, g(75),
			[]models.Ingredient{{Name: "Chickpea flour", Percentage: 50, Benefits: "Exfoliation"}, {Name: "Turmeric", Percentage: 5, Benefits: "Brightening"}},
			"exfoliation"),
	}
}
