package dummystore

import (
	"context"
	"sort"

	"github.com/coursatplus/coursat/core/catalog"
)

type catalogRepository struct {
	db *DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) AllSubjects(_ context.Context) ([]catalog.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := append([]catalog.Subject(nil), repo.db.subjects...)
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *catalogRepository) TeachersBySubject(_ context.Context, subjectID string) ([]catalog.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var teachers []catalog.Teacher
	for _, t := range repo.db.teachers {
		if t.SubjectID == subjectID {
			teachers = append(teachers, t)
		}
	}
	return teachers, nil
}

func (repo *catalogRepository) CoursesByTeacher(_ context.Context, teacherID string) ([]catalog.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var courses []catalog.Course
	for _, c := range repo.db.courses {
		if c.TeacherID == teacherID {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func (repo *catalogRepository) LecturesByCourse(_ context.Context, courseID string) ([]catalog.Lecture, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var lectures []catalog.Lecture
	for _, l := range repo.db.lectures {
		if l.CourseID == courseID {
			lectures = append(lectures, l)
		}
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].ID < lectures[j].ID })
	return lectures, nil
}

func (repo *catalogRepository) RecentLectures(_ context.Context, limit int) ([]catalog.Lecture, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	lectures := append([]catalog.Lecture(nil), repo.db.lectures...)
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].ID > lectures[j].ID })
	if limit > 0 && len(lectures) > limit {
		lectures = lectures[:limit]
	}
	return lectures, nil
}

func (repo *catalogRepository) GetLectureByID(_ context.Context, id string) (catalog.Lecture, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, l := range repo.db.lectures {
		if l.ID == id {
			return l, nil
		}
	}
	return catalog.Lecture{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetExamByID(_ context.Context, id string) (catalog.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if e, ok := repo.db.exams[id]; ok {
		return e, nil
	}
	return catalog.Exam{}, catalog.ErrNotFound
}

func (repo *catalogRepository) QuestionsByExam(_ context.Context, examID string) ([]catalog.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return append([]catalog.Question(nil), repo.db.questions[examID]...), nil
}
