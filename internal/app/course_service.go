package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"coursemcq/internal/mcq"
	"coursemcq/internal/model"
)

var ErrCourseNotFound = errors.New("course not found or no pdf available")

// CourseInfo describes one course directory and whether it carries a PDF.
type CourseInfo struct {
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name,omitempty"`
	PDFExists  bool   `json:"pdf_exists"`
	PDFPath    string `json:"pdf_path,omitempty"`
}

// TextCache caches extracted course text between generation requests.
type TextCache interface {
	GetText(ctx context.Context, courseCode string) (string, bool, error)
	SetText(ctx context.Context, courseCode, text string) error
	DeleteText(ctx context.Context, courseCode string) error
}

// QuizPublisher hands completed results to the persistence queue.
type QuizPublisher interface {
	Publish(ctx context.Context, msg model.QuizMessage) error
}

// CourseService locates course PDFs and drives the full generation
// pipeline: extract → chunk → select context → generate → result.
type CourseService struct {
	pdfDir    string
	extract   func(path string) (string, error)
	cache     TextCache
	publisher QuizPublisher
	chunker   *mcq.Chunker
	selector  *mcq.Selector
	generator *mcq.Generator
	logger    zerolog.Logger
}

func NewCourseService(
	pdfDir string,
	extract func(path string) (string, error),
	cache TextCache,
	publisher QuizPublisher,
	chunker *mcq.Chunker,
	selector *mcq.Selector,
	generator *mcq.Generator,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		pdfDir:    pdfDir,
		extract:   extract,
		cache:     cache,
		publisher: publisher,
		chunker:   chunker,
		selector:  selector,
		generator: generator,
		logger:    logger,
	}
}

// ListCourses returns every course directory under the PDF root.
func (s *CourseService) ListCourses() ([]CourseInfo, error) {
	entries, err := os.ReadDir(s.pdfDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CourseInfo{}, nil
		}
		return nil, fmt.Errorf("read course dir failed: %w", err)
	}

	courses := make([]CourseInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		code := entry.Name()
		pdfPath, found := s.findCoursePDF(code)
		courses = append(courses, CourseInfo{
			CourseCode: code,
			CourseName: "Course " + code,
			PDFExists:  found,
			PDFPath:    pdfPath,
		})
	}
	return courses, nil
}

// GetCourseInfo returns info for one course, or nil when it has no PDF.
func (s *CourseService) GetCourseInfo(courseCode string) *CourseInfo {
	pdfPath, found := s.findCoursePDF(courseCode)
	if !found {
		return nil
	}
	return &CourseInfo{
		CourseCode: courseCode,
		CourseName: "Course " + courseCode,
		PDFExists:  true,
		PDFPath:    pdfPath,
	}
}

// GenerateCourseQuiz is the outward entry point: it resolves the course,
// obtains its text, runs the generation pipeline and queues the result for
// persistence. Publishing is best effort; a queue failure never fails a
// generation that already succeeded.
func (s *CourseService) GenerateCourseQuiz(ctx context.Context, userID uint, courseCode string, numQuestions int) (*mcq.GenerationResult, error) {
	courseCode = strings.TrimSpace(courseCode)
	if courseCode == "" || numQuestions < 1 {
		return nil, ErrInvalidInput
	}

	pdfPath, found := s.findCoursePDF(courseCode)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseCode)
	}

	text, fromCache, err := s.courseText(ctx, courseCode, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("generate mcqs for course %s: %w", courseCode, err)
	}

	result, err := s.GenerateQuestions(ctx, courseCode, text, numQuestions)
	if err != nil {
		// A cached text that no longer chunks is stale; drop it so the next
		// request re-extracts instead of failing the same way.
		if fromCache && (errors.Is(err, mcq.ErrEmptyInput) || errors.Is(err, mcq.ErrNoValidChunks)) {
			if cacheErr := s.cache.DeleteText(ctx, courseCode); cacheErr != nil {
				s.logger.Warn().Err(cacheErr).Str("course", courseCode).Msg("drop stale course text failed")
			} else {
				s.logger.Info().Str("course", courseCode).Msg("dropped stale course text from cache")
			}
		}
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, model.QuizMessage{UserID: userID, Result: *result}); err != nil {
			s.logger.Error().Err(err).Str("course", courseCode).Msg("publish quiz for persistence failed")
		}
	}
	return result, nil
}

// GenerateQuestions runs chunking, relevance selection and generation over
// already-extracted document text. All failures are wrapped with the course
// code; no partial result is ever returned.
func (s *CourseService) GenerateQuestions(ctx context.Context, courseCode, documentText string, numQuestions int) (*mcq.GenerationResult, error) {
	chunks, err := s.chunker.Chunk(documentText)
	if err != nil {
		return nil, fmt.Errorf("generate mcqs for course %s: %w", courseCode, err)
	}
	s.logger.Info().Str("course", courseCode).Int("chunks", len(chunks)).Msg("chunked course text")

	relevant, err := s.selector.SelectContext(ctx, chunks, numQuestions)
	if err != nil {
		return nil, fmt.Errorf("generate mcqs for course %s: %w", courseCode, err)
	}
	s.logger.Info().Str("course", courseCode).Int("relevant_chunks", len(relevant)).Msg("selected relevant context")

	questions, err := s.generator.Generate(ctx, relevant, numQuestions)
	if err != nil {
		return nil, fmt.Errorf("generate mcqs for course %s: %w", courseCode, err)
	}
	s.logger.Info().Str("course", courseCode).Int("valid", len(questions)).Int("requested", numQuestions).Msg("generated mcqs")

	return &mcq.GenerationResult{
		CourseCode:   courseCode,
		NumQuestions: numQuestions,
		Questions:    questions,
		GeneratedAt:  time.Now(),
	}, nil
}

// courseText serves extracted text from the cache when possible and reports
// whether the text came from the cache. Cache failures degrade to
// extraction; they never fail the request.
func (s *CourseService) courseText(ctx context.Context, courseCode, pdfPath string) (string, bool, error) {
	if s.cache != nil {
		text, hit, err := s.cache.GetText(ctx, courseCode)
		if err != nil {
			s.logger.Warn().Err(err).Str("course", courseCode).Msg("course text cache read failed")
		} else if hit {
			return text, true, nil
		}
	}

	text, err := s.extract(pdfPath)
	if err != nil {
		return "", false, err
	}

	if s.cache != nil {
		if err := s.cache.SetText(ctx, courseCode, text); err != nil {
			s.logger.Warn().Err(err).Str("course", courseCode).Msg("course text cache write failed")
		}
	}
	return text, false, nil
}

// findCoursePDF returns the first PDF inside the course's directory.
func (s *CourseService) findCoursePDF(courseCode string) (string, bool) {
	courseDir := filepath.Join(s.pdfDir, courseCode)
	entries, err := os.ReadDir(courseDir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			return filepath.Join(courseDir, entry.Name()), true
		}
	}
	return "", false
}
