package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/w1ncs/netcontrol/internal/badges"
	"github.com/w1ncs/netcontrol/internal/config"
	"github.com/w1ncs/netcontrol/internal/database"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/schedule"
	"github.com/w1ncs/netcontrol/internal/utils"
)

func main() {
	fmt.Println("🌱 NetControl Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Net{},
		&models.NetSession{},
		&models.CheckIn{},
		&models.BadgeDefinition{},
		&models.AwardedBadge{},
		&models.RosterMember{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var profileCount int64
	db.Model(&models.Profile{}).Count(&profileCount)
	if profileCount > 0 {
		fmt.Printf("⚠️  Database already has %d profiles. Clear it first? (y/N): ", profileCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE awarded_badges CASCADE")
		db.Exec("TRUNCATE TABLE badge_definitions CASCADE")
		db.Exec("TRUNCATE TABLE roster_members CASCADE")
		db.Exec("TRUNCATE TABLE check_ins CASCADE")
		db.Exec("TRUNCATE TABLE net_sessions CASCADE")
		db.Exec("TRUNCATE TABLE nets CASCADE")
		db.Exec("TRUNCATE TABLE profiles CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📡 Creating demo data...")
	fmt.Println()

	// 1. Create profiles
	fmt.Println("👤 Creating profiles...")
	password, _ := utils.HashPassword("netcontrol")
	profiles := []models.Profile{
		{CallSign: "W1AW", Email: "w1aw@example.com", Password: password, Name: "Hiram Maxim", Location: "Newington, CT", Role: models.RoleAdmin},
		{CallSign: "K4ABC", Email: "k4abc@example.com", Password: password, Name: "Alice Brown", Location: "Atlanta, GA"},
		{CallSign: "N4XYZ", Email: "n4xyz@example.com", Password: password, Name: "Xavier Young", Location: "Nashville, TN"},
		{CallSign: "VE3GHI", Email: "ve3ghi@example.com", Password: password, Name: "Grace Hill", Location: "Toronto, ON"},
	}
	for i := range profiles {
		if err := db.Create(&profiles[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create profile %s: %v", profiles[i].CallSign, err)
		}
		fmt.Printf("   ✓ Created profile: %s (%s)\n", profiles[i].CallSign, profiles[i].Email)
	}
	fmt.Printf("✅ Created %d profiles (password: netcontrol)\n\n", len(profiles))

	// 2. Create nets
	fmt.Println("📻 Creating nets...")
	passcodeHash, _ := utils.HashPassword("cq-cq-cq")
	nets := []models.Net{
		{
			Name:        "Monday Night Traffic Net",
			Description: "Formal traffic handling, all licensed amateurs welcome.",
			CreatorID:   profiles[0].ID,
			Type:        models.NetTypeSingleRepeater,
			Schedule:    mustSchedule(schedule.Recurrence{Kind: schedule.Weekly, Weekday: time.Monday}),
			StartTime:   "19:30",
			TimeZone:    "America/New_York",
			Repeaters:   mustJSON([]models.Repeater{{Name: "W1AW/R", Frequency: 146.940, Offset: "-", Tone: "100.0"}}),
			PasscodeHash: &passcodeHash,
			Delegated:    mustJSON(models.PermissionSet{models.PermStartSession: true, models.PermEndSession: true, models.PermManageCheckIns: true}),
		},
		{
			Name:        "Sunrise Simplex Net",
			Description: "Early morning ragchew on simplex.",
			CreatorID:   profiles[1].ID,
			Type:        models.NetTypeSimplex,
			Schedule:    mustSchedule(schedule.Recurrence{Kind: schedule.Daily, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday}}),
			StartTime:   "06:00",
			TimeZone:    "America/New_York",
		},
		{
			Name:        "Second Tuesday Tech Net",
			Description: "Monthly technical Q&A on the linked system.",
			CreatorID:   profiles[0].ID,
			Type:        models.NetTypeLinkedSystem,
			Schedule:    mustSchedule(schedule.Recurrence{Kind: schedule.MonthlyByWeekday, Weekday: time.Tuesday, Week: 2}),
			StartTime:   "20:00",
			TimeZone:    "America/Chicago",
			Repeaters: mustJSON([]models.Repeater{
				{Name: "North Hub", Frequency: 147.120, Offset: "+", Tone: "110.9"},
				{Name: "South Hub", Frequency: 444.500, Offset: "+", Tone: "110.9"},
			}),
		},
	}
	for i := range nets {
		if err := db.Create(&nets[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create net %s: %v", nets[i].Name, err)
		}
		fmt.Printf("   ✓ Created net: %s\n", nets[i].Name)
	}
	fmt.Printf("✅ Created %d nets (Monday net passcode: cq-cq-cq)\n\n", len(nets))

	// 3. Create a finished session with check-ins
	fmt.Println("📝 Creating a past session with check-ins...")
	started := time.Now().Add(-7 * 24 * time.Hour)
	ended := started.Add(45 * time.Minute)
	session := models.NetSession{
		NetID:            nets[0].ID,
		StartedAt:        started,
		EndedAt:          &ended,
		OperatorCallSign: "W1AW",
		OperatorName:     "Hiram Maxim",
		Notes:            "Good turnout. Two pieces of formal traffic passed.",
	}
	if err := db.Create(&session).Error; err != nil {
		log.Fatalf("❌ Failed to create session: %v", err)
	}

	checkIns := []models.CheckIn{
		{SessionID: session.ID, CallSign: "K4ABC", Name: "Alice Brown", Location: "Atlanta, GA", Status: models.StatusAcknowledged, CreatedAt: started.Add(2 * time.Minute)},
		{SessionID: session.ID, CallSign: "N4XYZ", Name: "Xavier Young", Location: "Nashville, TN", Status: models.StatusAcknowledged, Notes: "First time checking in", CreatedAt: started.Add(5 * time.Minute)},
		{SessionID: session.ID, CallSign: "VE3GHI", Name: "Grace Hill", Location: "Toronto, ON", Status: models.StatusQuestion, CreatedAt: started.Add(9 * time.Minute)},
	}
	for i := range checkIns {
		if err := db.Create(&checkIns[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create check-in %s: %v", checkIns[i].CallSign, err)
		}
		fmt.Printf("   ✓ Checked in: %s\n", checkIns[i].CallSign)
	}
	fmt.Printf("✅ Created 1 session with %d check-ins\n\n", len(checkIns))

	// 4. Roster for the Monday net
	fmt.Println("📋 Creating roster...")
	roster := []models.RosterMember{
		{NetID: nets[0].ID, CallSign: "K4ABC", Name: "Alice Brown"},
		{NetID: nets[0].ID, CallSign: "N4XYZ", Name: "Xavier Young"},
	}
	for i := range roster {
		if err := db.Create(&roster[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create roster member %s: %v", roster[i].CallSign, err)
		}
	}
	fmt.Printf("✅ Created %d roster members\n\n", len(roster))

	// 5. Badge catalog
	fmt.Println("🏅 Syncing badge catalog...")
	catalog, err := badges.Load(cfg.Badges.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load badge catalog: %v", err)
	}
	if err := catalog.Sync(db.DB); err != nil {
		log.Fatalf("❌ Failed to sync badge catalog: %v", err)
	}
	fmt.Printf("✅ Synced %d badge definitions\n\n", len(catalog.Definitions()))

	fmt.Println("🎉 Demo data ready. Start the server with: go run ./cmd/api")
}

func mustSchedule(rec schedule.Recurrence) datatypes.JSON {
	if err := rec.Validate(); err != nil {
		log.Fatalf("❌ Bad demo schedule: %v", err)
	}
	return mustJSON(rec)
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("❌ Failed to marshal: %v", err)
	}
	return datatypes.JSON(data)
}
