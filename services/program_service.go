package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/utils/cache"
	"github.com/livingprogress/mentorme-api/utils/query"
	"gorm.io/gorm"
)

// ProgramService implements search and lifecycle operations over program
// templates. Templates are read-mostly: search never mutates the collection,
// and cloning never writes to a catalog row.
type ProgramService struct {
	db    *gorm.DB
	cache *cache.RedisCache // optional, nil when Redis is unavailable
}

// NewProgramService creates a new program service
func NewProgramService(db *gorm.DB, redisCache *cache.RedisCache) *ProgramService {
	return &ProgramService{
		db:    db,
		cache: redisCache,
	}
}

// ProgramSearchCriteria holds the optional filter fields for program search.
// Unset fields impose no constraint; populated fields are ANDed together.
type ProgramSearchCriteria struct {
	ProgramName       string
	InstitutionID     *uint
	MinDurationInDays *int
	MaxDurationInDays *int
	Locale            string
}

var programSearchDefinition = query.Definition[model.InstitutionalProgram]{
	DefaultSort: "id",
	Comparators: map[string]query.Comparator[model.InstitutionalProgram]{
		"id": func(a, b model.InstitutionalProgram) int {
			return query.CompareUint(a.ID, b.ID)
		},
		"programName": func(a, b model.InstitutionalProgram) int {
			return strings.Compare(a.ProgramName, b.ProgramName)
		},
		"durationInDays": func(a, b model.InstitutionalProgram) int {
			return query.CompareInt(a.DurationInDays, b.DurationInDays)
		},
		"institutionId": func(a, b model.InstitutionalProgram) int {
			return query.CompareUint(a.InstitutionID, b.InstitutionID)
		},
		"createdOn": func(a, b model.InstitutionalProgram) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	},
}

func (c ProgramSearchCriteria) predicates() []query.Predicate[model.InstitutionalProgram] {
	var predicates []query.Predicate[model.InstitutionalProgram]

	if c.ProgramName != "" {
		name := strings.ToLower(c.ProgramName)
		predicates = append(predicates, func(p model.InstitutionalProgram) bool {
			return strings.Contains(strings.ToLower(p.ProgramName), name)
		})
	}
	if c.InstitutionID != nil {
		id := *c.InstitutionID
		predicates = append(predicates, func(p model.InstitutionalProgram) bool {
			return p.InstitutionID == id
		})
	}
	if c.MinDurationInDays != nil {
		min := *c.MinDurationInDays
		predicates = append(predicates, func(p model.InstitutionalProgram) bool {
			return p.DurationInDays >= min
		})
	}
	if c.MaxDurationInDays != nil {
		max := *c.MaxDurationInDays
		predicates = append(predicates, func(p model.InstitutionalProgram) bool {
			return p.DurationInDays <= max
		})
	}

	return predicates
}

// Search filters, sorts and paginates program templates. When a locale is
// requested, programs without an overlay for that locale are dropped and the
// survivors are projected through their overlay before sorting, so sorting by
// programName orders by the locale-resolved name.
func (s *ProgramService) Search(ctx context.Context, criteria ProgramSearchCriteria, opts query.Options) (query.Result[model.InstitutionalProgram], error) {
	var programs []model.InstitutionalProgram
	if err := s.db.WithContext(ctx).
		Preload("Locales").
		Order("id ASC").
		Find(&programs).Error; err != nil {
		return query.Result[model.InstitutionalProgram]{}, err
	}

	if criteria.Locale != "" {
		localized := make([]model.InstitutionalProgram, 0, len(programs))
		for _, p := range programs {
			if view, ok := p.Localized(criteria.Locale); ok {
				localized = append(localized, view)
			}
		}
		programs = localized
	}

	return query.Search(programs, criteria.predicates(), opts, programSearchDefinition)
}

// programCacheKey is the Redis key for a cached program graph.
func programCacheKey(id uint) string {
	return fmt.Sprintf("program:%d", id)
}

// GetProgram loads a program template with its full graph: goals with tasks
// and links, responsibilities, links, documents and locale overlays. Nested
// sequences come back in ascending identity order, which is their authoring
// order.
func (s *ProgramService) GetProgram(ctx context.Context, id uint) (*model.InstitutionalProgram, error) {
	if s.cache != nil {
		var cached model.InstitutionalProgram
		if err := s.cache.GetJSON(ctx, programCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var program model.InstitutionalProgram
	err := s.db.WithContext(ctx).
		Preload("Goals", orderByID).
		Preload("Goals.Tasks", orderByID).
		Preload("Goals.Tasks.UsefulLinks", orderByID).
		Preload("Goals.Tasks.CustomData").
		Preload("Goals.UsefulLinks", orderByID).
		Preload("Responsibilities", orderByID).
		Preload("UsefulLinks", orderByID).
		Preload("Documents", orderByID).
		Preload("Locales").
		First(&program, id).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, programCacheKey(id), &program, 5*time.Minute)
	}

	return &program, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// CreateProgram persists a new template with its nested goals, tasks,
// responsibilities and links in one transaction. Identities and audit
// timestamps are assigned here; whatever the client sent for them was already
// discarded by the handler.
func (s *ProgramService) CreateProgram(ctx context.Context, program *model.InstitutionalProgram) error {
	var institution model.Institution
	if err := s.db.WithContext(ctx).First(&institution, program.InstitutionID).Error; err != nil {
		return fmt.Errorf("institution %d: %w", program.InstitutionID, err)
	}

	// Nested collections are sequences, never null.
	if program.Goals == nil {
		program.Goals = []model.Goal{}
	}
	if program.Responsibilities == nil {
		program.Responsibilities = []model.Responsibility{}
	}
	if program.UsefulLinks == nil {
		program.UsefulLinks = []model.UsefulLink{}
	}
	if program.Documents == nil {
		program.Documents = []model.Document{}
	}

	return s.db.WithContext(ctx).Create(program).Error
}

// UpdateProgram saves scalar field changes on an already-loaded template and
// refreshes its cache entry. CreatedAt is preserved; UpdatedAt is refreshed
// by the store.
func (s *ProgramService) UpdateProgram(ctx context.Context, program *model.InstitutionalProgram) error {
	if err := s.db.WithContext(ctx).Save(program).Error; err != nil {
		return err
	}
	s.invalidate(ctx, program.ID)
	return nil
}

// DeleteProgram removes a template and every record it exclusively owns:
// goals, their tasks and links, responsibilities, program links, locale
// overlays and document rows. Ownership removal is explicit, child tables
// first, all in one transaction. Assignments cloned from the template are
// untouched; their back-links dangle by design.
func (s *ProgramService) DeleteProgram(ctx context.Context, id uint) error {
	program, err := s.GetProgram(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goalIDs := make([]uint, 0, len(program.Goals))
		taskIDs := make([]uint, 0)
		for _, goal := range program.Goals {
			goalIDs = append(goalIDs, goal.ID)
			for _, task := range goal.Tasks {
				taskIDs = append(taskIDs, task.ID)
			}
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.TaskCustomData{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.UsefulLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		if len(goalIDs) > 0 {
			if err := tx.Where("goal_id IN ?", goalIDs).Delete(&model.UsefulLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", goalIDs).Delete(&model.Goal{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("institutional_program_id = ?", id).Delete(&model.Responsibility{}).Error; err != nil {
			return err
		}
		if err := tx.Where("institutional_program_id = ?", id).Delete(&model.UsefulLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("institutional_program_id = ?", id).Delete(&model.InstitutionalProgramLocale{}).Error; err != nil {
			return err
		}
		if err := tx.Where("institutional_program_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.InstitutionalProgram{}, id).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ProgramService) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		s.cache.Delete(ctx, programCacheKey(id))
	}
}
