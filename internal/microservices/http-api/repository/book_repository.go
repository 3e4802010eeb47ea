package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookplanner/internal/microservices/http-api/models"
)

type BookRepository interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
	// AppendSession locks the book, lets mutate adjust its progress fields,
	// then stores the session and the new progress in one transaction.
	AppendSession(ctx context.Context, id int64, session models.ReadingSession, mutate func(*models.Book) error) (*models.Book, error)
	ReplaceAll(ctx context.Context, books []models.Book) error
	DeleteAll(ctx context.Context) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func withSessions(db *gorm.DB) *gorm.DB {
	return db.Preload("ReadingSessions", func(db *gorm.DB) *gorm.DB {
		return db.Order("reading_sessions.id ASC")
	})
}

func (r *bookRepository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := withSessions(r.db.WithContext(ctx)).Order("id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	err := withSessions(r.db.WithContext(ctx)).First(&book, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &book, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	err := r.db.WithContext(ctx).Create(book).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func progressColumns(book *models.Book) map[string]any {
	return map[string]any{
		"current_page": book.CurrentPage,
		"status":       book.Status,
		"start_date":   book.StartDate,
	}
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	cols := progressColumns(book)
	cols["title"] = book.Title
	cols["author"] = book.Author
	cols["category"] = book.Category
	cols["total_pages"] = book.TotalPages
	cols["priority"] = book.Priority

	result := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", book.ID).Updates(cols)
	if result.Error != nil {
		return fmt.Errorf("update book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) AppendSession(ctx context.Context, id int64, session models.ReadingSession, mutate func(*models.Book) error) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Order("id ASC").Find(&book.ReadingSessions).Error; err != nil {
			return err
		}

		if err := mutate(&book); err != nil {
			return err
		}

		session.BookID = id
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Book{}).Where("id = ?", id).Updates(progressColumns(&book)).Error; err != nil {
			return err
		}
		book.ReadingSessions = append(book.ReadingSessions, session)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("append session: %w", err)
	}
	return &book, nil
}

func (r *bookRepository) ReplaceAll(ctx context.Context, books []models.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAllBooks(tx); err != nil {
			return err
		}
		if len(books) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(books, 100).Error; err != nil {
			return fmt.Errorf("import books: %w", err)
		}
		return nil
	})
}

func (r *bookRepository) DeleteAll(ctx context.Context) error {
	return deleteAllBooks(r.db.WithContext(ctx))
}

// Sessions go with their books through ON DELETE CASCADE.
func deleteAllBooks(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Book{}).Error; err != nil {
		return fmt.Errorf("delete all books: %w", err)
	}
	return nil
}
