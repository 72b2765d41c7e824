package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kpi-api/internal/models"

	"gorm.io/gorm"
)

// ErrBackend оборачивает любую ошибку хранилища, наружу уходит только этот текст
var ErrBackend = errors.New("backend unavailable")

const ActiveUsersLimit = 500

// Gateway: фиксированный набор читающих запросов сервиса
type Gateway interface {
	// nil, nil если строки нет
	FindUserByCode(ctx context.Context, code string) (*models.User, error)
	FindUsersActive(ctx context.Context) ([]models.User, error)
	FindUsersByCodes(ctx context.Context, codes []string) ([]models.User, error)
	FindRoundsForUserOnDate(ctx context.Context, code, date string) ([]models.Round, error)
	Ping(ctx context.Context) error
}

// QueryObserver получает длительность и результат каждого запроса
type QueryObserver interface {
	ObserveQuery(op string, took time.Duration, err error)
}

type Store struct {
	db           *gorm.DB
	queryTimeout time.Duration
	observer     QueryObserver
}

func NewStore(db *gorm.DB, queryTimeout time.Duration) *Store {
	return &Store{db: db, queryTimeout: queryTimeout}
}

func (s *Store) WithObserver(o QueryObserver) *Store {
	s.observer = o
	return s
}

func (s *Store) FindUserByCode(ctx context.Context, code string) (*models.User, error) {
	var users []models.User
	err := s.run(ctx, "find_user_by_code", func(tx *gorm.DB) error {
		return tx.Where("upper(name_code) = upper(?)", code).
			Limit(1).
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *Store) FindUsersActive(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.run(ctx, "find_users_active", func(tx *gorm.DB) error {
		return tx.Where("upper(coalesce(active, '')) LIKE ?", "Y%").
			Order("name_code").
			Limit(ActiveUsersLimit).
			Find(&users).Error
	})
	return users, err
}

func (s *Store) FindUsersByCodes(ctx context.Context, codes []string) ([]models.User, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var users []models.User
	err := s.run(ctx, "find_users_by_codes", func(tx *gorm.DB) error {
		return tx.Where("upper(name_code) IN ?", codes).Find(&users).Error
	})
	return users, err
}

func (s *Store) FindRoundsForUserOnDate(ctx context.Context, code, date string) ([]models.Round, error) {
	var rounds []models.Round
	err := s.run(ctx, "find_rounds_for_user", func(tx *gorm.DB) error {
		return tx.Where("upper(manv) = upper(?) AND ngay_txt = ?", code, date).
			Order("gio_di ASC NULLS LAST").
			Order("id ASC").
			Find(&rounds).Error
	})
	return rounds, err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.run(ctx, "ping", func(tx *gorm.DB) error {
		sqlDB, err := tx.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(tx.Statement.Context)
	})
}

// run ограничивает запрос таймаутом и заворачивает ошибку в ErrBackend
func (s *Store) run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(s.db.WithContext(ctx))
	if s.observer != nil {
		s.observer.ObserveQuery(op, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrBackend, err)
	}
	return nil
}
