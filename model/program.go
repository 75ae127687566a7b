package model

import (
	"time"

	"gorm.io/gorm"
)

// InstitutionalProgram is a reusable mentoring program template authored by an
// institution. It is never mutated when a mentee/mentor pair is assigned to it;
// assignment produces an independent MenteeMentorProgram instead.
type InstitutionalProgram struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	InstitutionID  uint           `gorm:"not null;index" json:"institution_id"`
	ProgramName    string         `gorm:"not null" json:"program_name"`
	Description    string         `gorm:"type:text" json:"description"`
	DurationInDays int            `gorm:"default:0" json:"duration_in_days"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	LocaleCode     string         `gorm:"type:varchar(10)" json:"locale_code,omitempty"` // default locale of the authored content

	// Relationships
	Institution      Institution                  `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"institution,omitempty"`
	Goals            []Goal                       `gorm:"foreignKey:InstitutionalProgramID;constraint:OnDelete:CASCADE" json:"goals"`
	Responsibilities []Responsibility             `gorm:"foreignKey:InstitutionalProgramID;constraint:OnDelete:CASCADE" json:"responsibilities"`
	UsefulLinks      []UsefulLink                 `gorm:"foreignKey:InstitutionalProgramID;constraint:OnDelete:CASCADE" json:"useful_links"`
	Documents        []Document                   `gorm:"foreignKey:InstitutionalProgramID;constraint:OnDelete:CASCADE" json:"documents"`
	Locales          []InstitutionalProgramLocale `gorm:"foreignKey:InstitutionalProgramID;constraint:OnDelete:CASCADE" json:"locales,omitempty"`
}

// InstitutionalProgramLocale is a per-locale overlay row for a program. The base
// record holds default-locale values; an overlay substitutes display fields when
// that locale is requested. Rows are owned by their program and looked up by
// (institutional_program_id, locale_code).
type InstitutionalProgramLocale struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	InstitutionalProgramID uint           `gorm:"not null;uniqueIndex:idx_program_locale" json:"institutional_program_id"`
	LocaleCode             string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_program_locale" json:"locale_code"`
	ProgramName            string         `gorm:"not null" json:"program_name"`
	Description            string         `gorm:"type:text" json:"description"`
}

// OverlayLocale implements locale.Overlay.
func (l InstitutionalProgramLocale) OverlayLocale() string {
	return l.LocaleCode
}

// Localized returns a view of the program with overlay fields for the given
// locale substituted over the defaults. The second return is false when the
// program has no overlay for that locale; locale-filtered result sets must
// exclude such programs rather than fall back to default-locale values.
func (p InstitutionalProgram) Localized(localeCode string) (InstitutionalProgram, bool) {
	for _, row := range p.Locales {
		if row.LocaleCode == localeCode {
			view := p
			view.ProgramName = row.ProgramName
			if row.Description != "" {
				view.Description = row.Description
			}
			view.LocaleCode = localeCode
			return view, true
		}
	}
	return p, false
}
