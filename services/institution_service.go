package services

import (
	"context"
	"strings"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/utils/query"
	"gorm.io/gorm"
)

// InstitutionService implements CRUD and search over institutions.
type InstitutionService struct {
	db *gorm.DB
}

// NewInstitutionService creates a new institution service
func NewInstitutionService(db *gorm.DB) *InstitutionService {
	return &InstitutionService{db: db}
}

// InstitutionSearchCriteria holds the optional filter fields for institution
// search.
type InstitutionSearchCriteria struct {
	InstitutionName string
	City            string
}

var institutionSearchDefinition = query.Definition[model.Institution]{
	DefaultSort: "id",
	Comparators: map[string]query.Comparator[model.Institution]{
		"id": func(a, b model.Institution) int {
			return query.CompareUint(a.ID, b.ID)
		},
		"institutionName": func(a, b model.Institution) int {
			return strings.Compare(a.InstitutionName, b.InstitutionName)
		},
		"city": func(a, b model.Institution) int {
			return strings.Compare(a.City, b.City)
		},
		"createdOn": func(a, b model.Institution) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	},
}

func (c InstitutionSearchCriteria) predicates() []query.Predicate[model.Institution] {
	var predicates []query.Predicate[model.Institution]

	if c.InstitutionName != "" {
		name := strings.ToLower(c.InstitutionName)
		predicates = append(predicates, func(i model.Institution) bool {
			return strings.Contains(strings.ToLower(i.InstitutionName), name)
		})
	}
	if c.City != "" {
		city := strings.ToLower(c.City)
		predicates = append(predicates, func(i model.Institution) bool {
			return strings.EqualFold(i.City, city) || strings.Contains(strings.ToLower(i.City), city)
		})
	}

	return predicates
}

// Search filters, sorts and paginates institutions.
func (s *InstitutionService) Search(ctx context.Context, criteria InstitutionSearchCriteria, opts query.Options) (query.Result[model.Institution], error) {
	var institutions []model.Institution
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&institutions).Error; err != nil {
		return query.Result[model.Institution]{}, err
	}

	return query.Search(institutions, criteria.predicates(), opts, institutionSearchDefinition)
}

// GetInstitution loads one institution with its program list.
func (s *InstitutionService) GetInstitution(ctx context.Context, id uint) (*model.Institution, error) {
	var institution model.Institution
	err := s.db.WithContext(ctx).
		Preload("Programs", orderByID).
		First(&institution, id).Error
	if err != nil {
		return nil, err
	}
	return &institution, nil
}

// CreateInstitution persists a new institution.
func (s *InstitutionService) CreateInstitution(ctx context.Context, institution *model.Institution) error {
	return s.db.WithContext(ctx).Create(institution).Error
}

// UpdateInstitution saves field changes on an already-loaded institution.
func (s *InstitutionService) UpdateInstitution(ctx context.Context, institution *model.Institution) error {
	return s.db.WithContext(ctx).Save(institution).Error
}

// DeleteInstitution soft-deletes an institution. Its program templates stay;
// catalog cleanup of orphaned programs is an explicit admin action.
func (s *InstitutionService) DeleteInstitution(ctx context.Context, id uint) error {
	var institution model.Institution
	if err := s.db.WithContext(ctx).First(&institution, id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&institution).Error
}
