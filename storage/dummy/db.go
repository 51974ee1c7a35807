package dummystore

import (
	"sync"
	"time"

	"github.com/coursatplus/coursat/core/catalog"
	"github.com/coursatplus/coursat/core/session"
)

// DB is an in-memory stand-in for the hosted store, used in tests and when
// running with mock data enabled.
type DB struct {
	sync.RWMutex
	codes     map[string]session.ActivationCode
	subjects  []catalog.Subject
	teachers  []catalog.Teacher
	courses   []catalog.Course
	lectures  []catalog.Lecture
	exams     map[string]catalog.Exam
	questions map[string][]catalog.Question
}

func Open() (*DB, error) {
	return &DB{
		codes:     make(map[string]session.ActivationCode),
		exams:     make(map[string]catalog.Exam),
		questions: make(map[string][]catalog.Question),
	}, nil
}

func (db *DB) SetActivationCode(ac session.ActivationCode) {
	db.Lock()
	defer db.Unlock()
	db.codes[ac.Code] = ac
}

func (db *DB) RemoveActivationCode(code string) {
	db.Lock()
	defer db.Unlock()
	delete(db.codes, code)
}

func (db *DB) AddSubject(s catalog.Subject) {
	db.Lock()
	defer db.Unlock()
	db.subjects = append(db.subjects, s)
}

func (db *DB) AddTeacher(t catalog.Teacher) {
	db.Lock()
	defer db.Unlock()
	db.teachers = append(db.teachers, t)
}

func (db *DB) AddCourse(c catalog.Course) {
	db.Lock()
	defer db.Unlock()
	db.courses = append(db.courses, c)
}

func (db *DB) AddLecture(l catalog.Lecture) {
	db.Lock()
	defer db.Unlock()
	db.lectures = append(db.lectures, l)
}

func (db *DB) AddExam(e catalog.Exam, questions ...catalog.Question) {
	db.Lock()
	defer db.Unlock()
	db.exams[e.ID] = e
	db.questions[e.ID] = append(db.questions[e.ID], questions...)
}

// Seed loads a small demo data set matching the platform's mock mode.
func (db *DB) Seed(now time.Time) {
	db.SetActivationCode(session.ActivationCode{
		Code:        "1111111",
		StudentName: "Demo Student",
		Section:     "Science",
		ExpiryDate:  now.AddDate(0, 0, 30),
	})
	db.AddSubject(catalog.Subject{ID: "1", Name: "Mathematics", Category: "Core"})
	db.AddSubject(catalog.Subject{ID: "2", Name: "Physics", Category: "Core"})
	db.AddTeacher(catalog.Teacher{ID: "1", Name: "Mr. Hassan", SubjectID: "1", Rating: 4.8, Specialty: "Algebra"})
	db.AddCourse(catalog.Course{ID: "1", Title: "Algebra Basics", TeacherID: "1", LectureCount: 2, Duration: "3h"})
	db.AddLecture(catalog.Lecture{ID: "1", CourseID: "1", Title: "Linear Equations", Duration: "45m", ExamID: "1"})
	db.AddLecture(catalog.Lecture{ID: "2", CourseID: "1", Title: "Quadratic Equations", Duration: "50m"})
	db.AddExam(
		catalog.Exam{ID: "1", Title: "Linear Equations Quiz", LectureID: "1", PassingScore: 50},
		catalog.Question{ID: "1", ExamID: "1", Text: "2x = 4, x = ?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: 1},
		catalog.Question{ID: "2", ExamID: "1", Text: "x + 1 = 3, x = ?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: 1},
	)
}
