package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"catalog/internal/api"
	"catalog/internal/cache"
	"catalog/internal/models"
)

// BookDraft carries the caller-editable book fields; the id is allocated on
// the create path.
type BookDraft struct {
	Title         string
	Author        string
	Genre         string
	Published     string
	CoverImageURL string
	Description   string
}

// ListBooks returns the books collection through the cache.
func (a *App) ListBooks(ctx context.Context) ([]models.Book, error) {
	entry, err := a.cache.Read(ctx, cache.CollectionKey(resourceBooks), func(ctx context.Context) (any, error) {
		return a.books.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	books, _ := entry.Data.([]models.Book)
	return books, nil
}

// GetBook returns a single book through the cache.
func (a *App) GetBook(ctx context.Context, id int) (models.Book, error) {
	recordID := strconv.Itoa(id)
	entry, err := a.cache.Read(ctx, cache.RecordKey(resourceBooks, recordID), func(ctx context.Context) (any, error) {
		return a.books.Get(ctx, recordID)
	})
	if err != nil {
		return models.Book{}, err
	}
	book, _ := entry.Data.(models.Book)
	return book, nil
}

// CreateBook allocates the next book id, submits the record, and invalidates
// the affected cache keys so the next read re-fetches.
func (a *App) CreateBook(ctx context.Context, draft BookDraft) (models.Book, error) {
	id, err := a.alloc.NextBookID(ctx)
	if err != nil {
		return models.Book{}, err
	}

	created, err := a.books.Create(ctx, models.Book{
		ID:            id,
		Title:         draft.Title,
		Author:        draft.Author,
		Genre:         draft.Genre,
		Published:     draft.Published,
		CoverImageURL: draft.CoverImageURL,
		Description:   draft.Description,
	})
	if err != nil {
		return models.Book{}, err
	}

	a.cache.InvalidateRecord(resourceBooks, strconv.Itoa(created.ID))
	return created, nil
}

// UpdateBook replaces a book. With a coverPath the request is encoded as
// multipart carrying the structured fields plus the binary image; without one
// it is plain JSON carrying the prior cover URL.
func (a *App) UpdateBook(ctx context.Context, book models.Book, coverPath string) (models.Book, error) {
	recordID := strconv.Itoa(book.ID)

	var updated models.Book
	if coverPath != "" {
		f, err := os.Open(coverPath)
		if err != nil {
			return models.Book{}, fmt.Errorf("failed to open cover image: %w", err)
		}
		defer f.Close()

		fields := map[string]string{
			"title":       book.Title,
			"author":      book.Author,
			"genre":       book.Genre,
			"published":   book.Published,
			"description": book.Description,
		}
		updated, err = a.books.UpdateMultipart(ctx, recordID, fields, api.Attachment{
			Field:    "coverImage",
			Filename: filepath.Base(coverPath),
			Content:  f,
		})
		if err != nil {
			return models.Book{}, err
		}
	} else {
		var err error
		updated, err = a.books.Update(ctx, recordID, book)
		if err != nil {
			return models.Book{}, err
		}
	}

	a.cache.InvalidateRecord(resourceBooks, recordID)
	return updated, nil
}

// DeleteBook removes a book and invalidates the affected cache keys.
func (a *App) DeleteBook(ctx context.Context, id int) error {
	recordID := strconv.Itoa(id)
	if err := a.books.Remove(ctx, recordID); err != nil {
		return err
	}
	a.cache.InvalidateRecord(resourceBooks, recordID)
	return nil
}
