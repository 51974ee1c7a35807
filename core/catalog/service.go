package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core"
)

// DefaultRecentLimit caps the "what's new" lecture feed.
const DefaultRecentLimit = 5

var (
	// errors
	ErrNotFound = errors.New("the content you are looking for is not available right now")
)

type (
	Repository interface {
		AllSubjects(ctx context.Context) ([]Subject, error)
		TeachersBySubject(ctx context.Context, subjectID string) ([]Teacher, error)
		CoursesByTeacher(ctx context.Context, teacherID string) ([]Course, error)
		LecturesByCourse(ctx context.Context, courseID string) ([]Lecture, error)
		RecentLectures(ctx context.Context, limit int) ([]Lecture, error)
		GetLectureByID(ctx context.Context, id string) (Lecture, error)
		GetExamByID(ctx context.Context, id string) (Exam, error)
		QuestionsByExam(ctx context.Context, examID string) ([]Question, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Subjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.AllSubjects(ctx)
}

func (svc *Service) Teachers(ctx context.Context, subjectID string) ([]Teacher, error) {
	return svc.repo.TeachersBySubject(ctx, core.CleanString(subjectID))
}

func (svc *Service) Courses(ctx context.Context, teacherID string) ([]Course, error) {
	return svc.repo.CoursesByTeacher(ctx, core.CleanString(teacherID))
}

func (svc *Service) Lectures(ctx context.Context, courseID string) ([]Lecture, error) {
	return svc.repo.LecturesByCourse(ctx, core.CleanString(courseID))
}

func (svc *Service) RecentLectures(ctx context.Context, limit int) ([]Lecture, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return svc.repo.RecentLectures(ctx, limit)
}

func (svc *Service) GetLecture(ctx context.Context, id string) (Lecture, error) {
	return svc.repo.GetLectureByID(ctx, core.CleanString(id))
}

func (svc *Service) GetExam(ctx context.Context, id string) (Exam, error) {
	return svc.repo.GetExamByID(ctx, core.CleanString(id))
}

func (svc *Service) Questions(ctx context.Context, examID string) ([]Question, error) {
	return svc.repo.QuestionsByExam(ctx, core.CleanString(examID))
}
