package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/services/storage"
	"github.com/livingprogress/mentorme-api/utils/pdfvalidation"
	"gorm.io/gorm"
)

// ObjectStore is the slice of the Spaces client the document service needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ErrInvalidDocument marks an upload rejected by content validation.
var ErrInvalidDocument = errors.New("invalid document")

// DocumentService stores program documents in Spaces and tracks them in the
// database. The database row is the source of truth; a failed object delete
// never blocks row removal.
type DocumentService struct {
	db    *gorm.DB
	store ObjectStore
}

// NewDocumentService creates a new document service
func NewDocumentService(db *gorm.DB, store ObjectStore) *DocumentService {
	return &DocumentService{db: db, store: store}
}

// UploadProgramDocument validates an uploaded file, stores it under the
// program's key prefix and records a document row. PDF uploads are checked
// for header, size and page count before any byte leaves the process.
func (s *DocumentService) UploadProgramDocument(ctx context.Context, programID, uploadedByUserID uint, file *multipart.FileHeader) (*model.Document, error) {
	var program model.InstitutionalProgram
	if err := s.db.WithContext(ctx).First(&program, programID).Error; err != nil {
		return nil, fmt.Errorf("program %d: %w", programID, err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	pageCount := 0
	if strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		result, err := pdfvalidation.ValidatePDFBytes(content, pdfvalidation.ProgramDocumentLimits)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, result.Error)
		}
		pageCount = result.PageCount
	}

	key := storage.ProgramDocumentKey(programID, file.Filename)
	contentType := storage.ContentType(file.Filename)

	url, err := s.store.Upload(ctx, key, content, contentType)
	if err != nil {
		return nil, err
	}

	document := &model.Document{
		FileName:               file.Filename,
		SpacesURL:              url,
		SpacesKey:              key,
		ContentType:            contentType,
		FileSize:               int64(len(content)),
		PageCount:              pageCount,
		UploadedByUserID:       uploadedByUserID,
		InstitutionalProgramID: &programID,
	}
	if err := s.db.WithContext(ctx).Create(document).Error; err != nil {
		// Best effort rollback of the stored object.
		s.store.Delete(ctx, key)
		return nil, err
	}

	return document, nil
}

// GetDocument loads one document row.
func (s *DocumentService) GetDocument(ctx context.Context, id uint) (*model.Document, error) {
	var document model.Document
	if err := s.db.WithContext(ctx).First(&document, id).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// DeleteDocument removes a document row and its stored object. The row goes
// first; an object store failure after that is logged by the caller, not
// retried here.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uint) error {
	document, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&model.Document{}, id).Error; err != nil {
		return err
	}

	if document.SpacesKey != "" {
		return s.store.Delete(ctx, document.SpacesKey)
	}
	return nil
}
