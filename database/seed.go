package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedInstitutions(); err != nil {
		return fmt.Errorf("failed to seed institutions: %w", err)
	}

	if err := s.SeedPrograms(); err != nil {
		return fmt.Errorf("failed to seed programs: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleAdmin,
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user: %s\n", admin.Email)
	return nil
}

// SeedUsers creates sample mentees and mentors
func (s *Seeder) SeedUsers() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role IN ?", []string{model.RoleMentee, model.RoleMentor}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Users already exist, skipping...")
		return nil
	}

	passwordHash, err := auth.HashPassword("changeme123")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := []model.User{
		{Email: "maria.lopez@example.com", PasswordHash: passwordHash, Name: "Maria Lopez", Role: model.RoleMentee},
		{Email: "james.carter@example.com", PasswordHash: passwordHash, Name: "James Carter", Role: model.RoleMentee},
		{Email: "aisha.khan@example.com", PasswordHash: passwordHash, Name: "Aisha Khan", Role: model.RoleMentee},
		{Email: "daniel.reed@example.com", PasswordHash: passwordHash, Name: "Daniel Reed", Role: model.RoleMentor},
		{Email: "susan.cho@example.com", PasswordHash: passwordHash, Name: "Susan Cho", Role: model.RoleMentor},
		{Email: "peter.novak@example.com", PasswordHash: passwordHash, Name: "Peter Novak", Role: model.RoleMentor},
	}

	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	log.Printf("Created %d users\n", len(users))
	return nil
}

// SeedInstitutions creates sample institutions
func (s *Seeder) SeedInstitutions() error {
	var count int64
	if err := s.db.Model(&model.Institution{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Institutions already exist, skipping...")
		return nil
	}

	institutions := []model.Institution{
		{
			InstitutionName:    "Lincoln High School",
			ParentOrganization: "Metro Public Schools",
			City:               "Portland",
			Email:              "programs@lincolnhigh.example.org",
			Phone:              "503-555-0101",
			Description:        "Public high school running college and career readiness mentoring.",
		},
		{
			InstitutionName:    "Riverside Community College",
			ParentOrganization: "State Community College System",
			City:               "Riverside",
			Email:              "mentoring@rcc.example.edu",
			Phone:              "951-555-0102",
			Description:        "Community college with first-generation student mentoring programs.",
		},
		{
			InstitutionName:    "Bright Futures Foundation",
			ParentOrganization: "",
			City:               "Chicago",
			Email:              "contact@brightfutures.example.org",
			Phone:              "312-555-0103",
			Description:        "Nonprofit pairing youth with professional mentors.",
		},
		{
			InstitutionName:    "TechBridge Academy",
			ParentOrganization: "TechBridge Network",
			City:               "Austin",
			Email:              "hello@techbridge.example.org",
			Phone:              "512-555-0104",
			Description:        "Vocational academy with industry mentorship tracks.",
		},
		{
			InstitutionName:    "Harbor Youth Center",
			ParentOrganization: "Harbor Charities",
			City:               "Baltimore",
			Email:              "info@harboryouth.example.org",
			Phone:              "410-555-0105",
			Description:        "Community center offering after-school mentoring.",
		},
	}

	if err := s.db.Create(&institutions).Error; err != nil {
		return err
	}

	log.Printf("Created %d institutions\n", len(institutions))
	return nil
}

// SeedPrograms creates sample program templates with goals, tasks,
// responsibilities, links and locale overlays.
func (s *Seeder) SeedPrograms() error {
	var count int64
	if err := s.db.Model(&model.InstitutionalProgram{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Programs already exist, skipping...")
		return nil
	}

	var institutions []model.Institution
	if err := s.db.Order("id ASC").Find(&institutions).Error; err != nil {
		return err
	}
	if len(institutions) < 5 {
		return fmt.Errorf("expected at least 5 institutions, seed institutions first")
	}

	dueDate := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	programs := []model.InstitutionalProgram{
		{
			InstitutionID:  institutions[0].ID,
			ProgramName:    "College Readiness Program 1",
			Description:    "A semester-long track preparing students for college applications.",
			DurationInDays: 25,
			LocaleCode:     "en",
			Goals: []model.Goal{
				{
					Number:         1,
					Subject:        "Self assessment",
					Description:    "Identify strengths, interests and target schools.",
					DurationInDays: 7,
					Tasks: []model.Task{
						{Number: 1, Description: "Complete the interests questionnaire", DurationInDays: 2},
						{Number: 2, Description: "Draft a list of five target schools", DurationInDays: 3},
					},
					UsefulLinks: []model.UsefulLink{
						{Title: "Choosing a college", Address: "https://example.org/choosing-a-college"},
					},
				},
				{
					Number:         2,
					Subject:        "Application essays",
					Description:    "Write and revise the personal statement.",
					DurationInDays: 14,
					Tasks: []model.Task{
						{Number: 1, Description: "Outline the personal statement", DurationInDays: 3},
						{Number: 2, Description: "Review the draft with your mentor", DurationInDays: 4},
					},
				},
			},
			Responsibilities: []model.Responsibility{
				{
					Number:               1,
					Title:                "Weekly check-in",
					Date:                 &dueDate,
					MenteeResponsibility: "Prepare questions before every session.",
					MentorResponsibility: "Review progress and give feedback every week.",
				},
				{
					Number:               2,
					Title:                "Essay review",
					MenteeResponsibility: "Share drafts two days before the review.",
					MentorResponsibility: "Return written comments within a week.",
				},
			},
			UsefulLinks: []model.UsefulLink{
				{Title: "Program handbook", Address: "https://example.org/handbook"},
			},
		},
		{
			InstitutionID:  institutions[1].ID,
			ProgramName:    "Career Exploration Program 2",
			Description:    "Job shadowing and informational interviews with local employers.",
			DurationInDays: 15,
			LocaleCode:     "en",
		},
		{
			InstitutionID:  institutions[2].ID,
			ProgramName:    "Leadership Program 3",
			Description:    "Community leadership projects guided by professional mentors.",
			DurationInDays: 10,
			LocaleCode:     "en",
		},
		{
			InstitutionID:  institutions[3].ID,
			ProgramName:    "Software Apprenticeship Program 4",
			Description:    "Paired programming and code review with industry engineers.",
			DurationInDays: 18,
			LocaleCode:     "en",
		},
		{
			InstitutionID:  institutions[4].ID,
			ProgramName:    "Financial Literacy Program 5",
			Description:    "Budgeting, saving and credit basics for young adults.",
			DurationInDays: 12,
			LocaleCode:     "en",
		},
		{
			InstitutionID:  institutions[0].ID,
			ProgramName:    "Orientation Week Program 6",
			Description:    "A short onboarding track for new mentees.",
			DurationInDays: 5,
			LocaleCode:     "en",
		},
	}

	if err := s.db.Create(&programs).Error; err != nil {
		return err
	}

	// Locale overlays: English overlays on four programs, Spanish on two.
	locales := []model.InstitutionalProgramLocale{
		{InstitutionalProgramID: programs[0].ID, LocaleCode: "en", ProgramName: "College Readiness Program 1", Description: "A semester-long track preparing students for college applications."},
		{InstitutionalProgramID: programs[1].ID, LocaleCode: "en", ProgramName: "Career Exploration Program 2", Description: "Job shadowing and informational interviews with local employers."},
		{InstitutionalProgramID: programs[2].ID, LocaleCode: "es", ProgramName: "Programa de Liderazgo 3", Description: "Proyectos de liderazgo comunitario guiados por mentores profesionales."},
		{InstitutionalProgramID: programs[3].ID, LocaleCode: "en", ProgramName: "Software Apprenticeship Program 4", Description: "Paired programming and code review with industry engineers."},
		{InstitutionalProgramID: programs[4].ID, LocaleCode: "en", ProgramName: "Financial Literacy Program 5", Description: "Budgeting, saving and credit basics for young adults."},
		{InstitutionalProgramID: programs[5].ID, LocaleCode: "es", ProgramName: "Programa de Orientacion 6", Description: "Una semana corta de incorporacion para nuevos aprendices."},
	}

	if err := s.db.Create(&locales).Error; err != nil {
		return err
	}

	log.Printf("Created %d programs with %d locale overlays\n", len(programs), len(locales))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
