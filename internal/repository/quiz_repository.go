package repository

import (
	"fmt"

	"gorm.io/gorm"

	"coursemcq/internal/model"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	if err := r.db.Create(quiz).Error; err != nil {
		return fmt.Errorf("create quiz failed: %w", err)
	}
	return nil
}

func (r *QuizRepository) ListByUserID(userID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("list quizzes by user failed: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) ListByCourseCode(courseCode string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.Where("course_code = ?", courseCode).Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("list quizzes by course failed: %w", err)
	}
	return quizzes, nil
}
