package program

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/database"
	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestZZDiag(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	inst := model.Institution{InstitutionName: "X", City: "Y"}
	if err := db.Create(&inst).Error; err != nil {
		t.Fatal(err)
	}
	p := model.InstitutionalProgram{InstitutionID: inst.ID, ProgramName: "P", DurationInDays: 5}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	handler := NewProgramHandler(services.NewProgramService(db, nil), services.NewAssignmentService(db))
	app := fiber.New()
	app.Get("/institutionalPrograms/:id", handler.Get)

	req := httptest.NewRequest("GET", fmt.Sprintf("/institutionalPrograms/%d", p.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	t.Logf("status=%d body=%s", resp.StatusCode, body)
}
