package main

import (
	"log"
	"os"
	"time"

	idmodels "casavista-listings/internal/identity/models"
	"casavista-listings/internal/models"
	"casavista-listings/pkg/config"
	"casavista-listings/pkg/database"
	"casavista-listings/pkg/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// seedPassword is shared by every seeded account for easy manual testing.
const seedPassword = "senha123"

// 1x1 transparent PNG, enough to exercise the image endpoints.
var seedPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54,
	0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00, 0x05,
	0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4,
	0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44,
	0xae, 0x42, 0x60, 0x82,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(os.Stdout, cfg.Logging.Level)

	if cfg.IsProduction() {
		log.Fatalf("Refusing to seed: ENVIRONMENT is production")
	}

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	if err := database.AutoMigrate(
		&idmodels.Account{},
		&models.Address{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Visit{},
		&models.Proposal{},
		&models.Favorite{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Rerunning against a seeded database would trip the unique indexes, so
	// treat the presence of the admin account as "already done".
	var existing int64
	if err := database.DB.Model(&idmodels.Account{}).Where("username = ?", "admin").Count(&existing).Error; err != nil {
		log.Fatalf("Failed to check for existing seed data: %v", err)
	}
	if existing > 0 {
		logger.GlobalLogger.Println("Database already seeded, nothing to do")
		return
	}

	accounts := seedAccounts()
	properties := seedProperties(accounts)
	seedImages(properties)
	seedVisits(accounts, properties)
	seedProposals(accounts, properties)
	seedFavorites(accounts, properties)

	logger.GlobalLogger.Printf("Seeded %d accounts, %d properties", len(accounts), len(properties))
	logger.GlobalLogger.Printf("All accounts use password %q", seedPassword)
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	return string(hash)
}

func mustCreate(entity interface{}, what string) {
	if err := database.DB.Create(entity).Error; err != nil {
		log.Fatalf("Failed to seed %s: %v", what, err)
	}
}

// seedAccounts creates one admin, two property owners and three regular
// users, keyed by username.
func seedAccounts() map[string]*idmodels.Account {
	hash := mustHash(seedPassword)
	list := []*idmodels.Account{
		{Username: "admin", FullName: "Platform Admin", Email: "admin@casavista.dev", PhoneNumber: "+5511999990000", Password: hash, Role: idmodels.RoleAdmin, IsActive: true},
		{Username: "johndoe", FullName: "John Doe", Email: "john.doe@email.com", PhoneNumber: "+5511999990001", Password: hash, Role: idmodels.RolePropertyOwner, IsActive: true},
		{Username: "mariasilva", FullName: "Maria Silva", Email: "maria.silva@email.com", PhoneNumber: "+5521999990002", Password: hash, Role: idmodels.RolePropertyOwner, IsActive: true},
		{Username: "alicejohnson", FullName: "Alice Johnson", Email: "alice.johnson@email.com", PhoneNumber: "+5511999990004", Password: hash, Role: idmodels.RoleUser, IsActive: true},
		{Username: "bobsmith", FullName: "Bob Smith", Email: "bob.smith@email.com", PhoneNumber: "+5521999990005", Password: hash, Role: idmodels.RoleUser, IsActive: true},
		{Username: "carolwhite", FullName: "Carol White", Email: "carol.white@email.com", PhoneNumber: "+5531999990006", Password: hash, Role: idmodels.RoleUser, IsActive: true},
	}

	accounts := make(map[string]*idmodels.Account, len(list))
	for _, account := range list {
		mustCreate(account, "account "+account.Username)
		accounts[account.Username] = account
	}
	return accounts
}

// seedProperties creates two listings per owner, including one inactive one
// so soft-delete visibility can be checked by hand.
func seedProperties(accounts map[string]*idmodels.Account) map[string]*models.Property {
	floor15, floor20 := 15, 20
	landPrice := 200000.00
	single := true

	list := []*models.Property{
		{
			OwnerID:       accounts["johndoe"].ID,
			Address:       models.Address{Street: "Main Street", Number: "123", City: "Sao Paulo", PostalCode: "01234567", Country: "Brazil"},
			PropertyType:  models.PropertyTypeHouse,
			SalesType:     models.SalesTypeSale,
			PropertySize:  250.5,
			PropertyValue: 450000.00,
			Description:   "Beautiful 3-bedroom house with large backyard and garage",
			PublishDate:   time.Now().AddDate(0, -2, 0),
			LandPrice:     &landPrice,
			IsSingleHouse: &single,
			IsActive:      true,
		},
		{
			OwnerID:        accounts["johndoe"].ID,
			Address:        models.Address{Street: "Paulista Avenue", Number: "1000", City: "Sao Paulo", PostalCode: "01310100", Country: "Brazil"},
			PropertyType:   models.PropertyTypeApartment,
			SalesType:      models.SalesTypeRent,
			PropertySize:   85.5,
			PropertyValue:  3500.00,
			Description:    "Modern 2-bedroom apartment in downtown with amazing city view",
			PublishDate:    time.Now().AddDate(0, -1, 0),
			CondominiumFee: 800.00,
			CommonArea:     true,
			Floor:          &floor15,
			IsPetAllowed:   true,
			IsActive:       true,
		},
		{
			OwnerID:        accounts["mariasilva"].ID,
			Address:        models.Address{Street: "Atlantic Avenue", Number: "2000", City: "Rio de Janeiro", PostalCode: "22000000", Country: "Brazil"},
			PropertyType:   models.PropertyTypeApartment,
			SalesType:      models.SalesTypeSale,
			PropertySize:   120.0,
			PropertyValue:  650000.00,
			Description:    "Luxury 3-bedroom apartment with ocean view and pool",
			PublishDate:    time.Now().AddDate(0, -1, -15),
			CondominiumFee: 1200.00,
			CommonArea:     true,
			Floor:          &floor20,
			IsActive:       true,
		},
		{
			OwnerID:       accounts["mariasilva"].ID,
			Address:       models.Address{Street: "Oak Avenue", Number: "456", City: "Rio de Janeiro", PostalCode: "20000000", Country: "Brazil"},
			PropertyType:  models.PropertyTypeHouse,
			SalesType:     models.SalesTypeRent,
			PropertySize:  180.0,
			PropertyValue: 2500.00,
			Description:   "Cozy 2-bedroom house near the beach, already taken off the market",
			PublishDate:   time.Now().AddDate(0, -3, 0),
			IsActive:      false,
		},
	}

	properties := make(map[string]*models.Property, len(list))
	for _, property := range list {
		mustCreate(property, "property at "+property.Address.Street)
		properties[property.Address.Street] = property
	}
	return properties
}

func seedImages(properties map[string]*models.Property) {
	mustCreate(&models.PropertyImage{
		PropertyID:   properties["Main Street"].ID,
		ImageData:    seedPNG,
		ContentType:  "image/png",
		FileName:     "front.png",
		FileSize:     int64(len(seedPNG)),
		DisplayOrder: 1,
		IsPrimary:    true,
	}, "property image")
}

// seedVisits covers the lifecycle states: pending future, completed past and
// cancelled.
func seedVisits(accounts map[string]*idmodels.Account, properties map[string]*models.Property) {
	list := []*models.Visit{
		{
			PropertyID: properties["Main Street"].ID,
			UserID:     accounts["alicejohnson"].ID,
			VisitDate:  time.Now().AddDate(0, 0, 3),
			Notes:      "Interested in the backyard",
		},
		{
			PropertyID:       properties["Main Street"].ID,
			UserID:           accounts["bobsmith"].ID,
			VisitDate:        time.Now().AddDate(0, 0, -7),
			IsVisitCompleted: true,
		},
		{
			PropertyID:         properties["Paulista Avenue"].ID,
			UserID:             accounts["carolwhite"].ID,
			VisitDate:          time.Now().AddDate(0, 0, 5),
			Cancelled:          true,
			CancellationReason: "Found another place",
		},
		{
			PropertyID: properties["Atlantic Avenue"].ID,
			UserID:     accounts["bobsmith"].ID,
			VisitDate:  time.Now().AddDate(0, 0, 10),
		},
	}
	for _, visit := range list {
		mustCreate(visit, "visit")
	}
}

// seedProposals covers pending, accepted, rejected, withdrawn and expired.
func seedProposals(accounts map[string]*idmodels.Account, properties map[string]*models.Property) {
	responded := time.Now().AddDate(0, 0, -2)
	list := []*models.Proposal{
		{
			PropertyID:    properties["Main Street"].ID,
			UserID:        accounts["alicejohnson"].ID,
			ProposalValue: 430000.00,
			Status:        models.ProposalStatusPending,
			Message:       "Would you take 430k for a quick close?",
		},
		{
			PropertyID:      properties["Paulista Avenue"].ID,
			UserID:          accounts["bobsmith"].ID,
			ProposalValue:   3400.00,
			Status:          models.ProposalStatusAccepted,
			ResponseMessage: "Deal, see you at the signing",
			ResponseDate:    &responded,
		},
		{
			PropertyID:      properties["Atlantic Avenue"].ID,
			UserID:          accounts["carolwhite"].ID,
			ProposalValue:   500000.00,
			Status:          models.ProposalStatusRejected,
			ResponseMessage: "Too far below asking",
			ResponseDate:    &responded,
		},
		{
			PropertyID:    properties["Atlantic Avenue"].ID,
			UserID:        accounts["alicejohnson"].ID,
			ProposalValue: 620000.00,
			Status:        models.ProposalStatusWithdrawn,
		},
		{
			PropertyID:    properties["Oak Avenue"].ID,
			UserID:        accounts["bobsmith"].ID,
			ProposalValue: 2400.00,
			Status:        models.ProposalStatusPending,
			ExpiresAt:     time.Now().AddDate(0, 0, -1),
		},
	}
	for _, proposal := range list {
		mustCreate(proposal, "proposal")
	}
}

func seedFavorites(accounts map[string]*idmodels.Account, properties map[string]*models.Property) {
	list := []*models.Favorite{
		{UserID: accounts["alicejohnson"].ID, PropertyID: properties["Main Street"].ID},
		{UserID: accounts["alicejohnson"].ID, PropertyID: properties["Atlantic Avenue"].ID},
		{UserID: accounts["bobsmith"].ID, PropertyID: properties["Paulista Avenue"].ID},
	}
	for _, favorite := range list {
		mustCreate(favorite, "favorite")
	}
}
