package supabase

import (
	"context"
	"encoding/json"

	"github.com/coursatplus/coursat/core/catalog"
)

type catalogRepository struct {
	client *Client
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(client *Client) catalog.Repository {
	return &catalogRepository{client: client}
}

// Row types keep the store's loose shapes (numeric ids, alternate image
// columns, per-option columns) out of the typed entities.

type subjectRow struct {
	ID           json.Number `json:"id"`
	Name         string      `json:"name"`
	Image        string      `json:"image"`
	ImageURL     string      `json:"image_url"`
	Category     string      `json:"category"`
	LessonsCount int         `json:"lessons_count"`
}

func (row subjectRow) normalize() catalog.Subject {
	return catalog.Subject{
		ID:           row.ID.String(),
		Name:         row.Name,
		Image:        firstNonEmpty(row.Image, row.ImageURL),
		Category:     row.Category,
		LessonsCount: row.LessonsCount,
	}
}

type teacherRow struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	Avatar    string      `json:"avatar"`
	AvatarURL string      `json:"avatar_url"`
	SubjectID json.Number `json:"subject_id"`
	Rating    float64     `json:"rating"`
	Specialty string      `json:"specialty"`
}

func (row teacherRow) normalize() catalog.Teacher {
	return catalog.Teacher{
		ID:        row.ID.String(),
		Name:      row.Name,
		Avatar:    firstNonEmpty(row.Avatar, row.AvatarURL),
		SubjectID: row.SubjectID.String(),
		Rating:    row.Rating,
		Specialty: row.Specialty,
	}
}

type courseRow struct {
	ID           json.Number `json:"id"`
	Title        string      `json:"title"`
	TeacherID    json.Number `json:"teacher_id"`
	Thumbnail    string      `json:"thumbnail"`
	LectureCount int         `json:"lecture_count"`
	Duration     string      `json:"duration"`
}

func (row courseRow) normalize() catalog.Course {
	return catalog.Course{
		ID:           row.ID.String(),
		Title:        row.Title,
		TeacherID:    row.TeacherID.String(),
		Thumbnail:    row.Thumbnail,
		LectureCount: row.LectureCount,
		Duration:     row.Duration,
	}
}

type lecturePartRow struct {
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}

type lectureRow struct {
	ID          json.Number      `json:"id"`
	CourseID    json.Number      `json:"course_id"`
	Title       string           `json:"title"`
	VideoURL    string           `json:"video_url"`
	Duration    string           `json:"duration"`
	Description string           `json:"description"`
	Thumbnail   string           `json:"thumbnail"`
	PDFURL      string           `json:"pdf_url"`
	ExamID      json.Number      `json:"exam_id"`
	Parts       []lecturePartRow `json:"parts"`
}

func (row lectureRow) normalize() catalog.Lecture {
	lec := catalog.Lecture{
		ID:          row.ID.String(),
		CourseID:    row.CourseID.String(),
		Title:       row.Title,
		VideoURL:    row.VideoURL,
		Duration:    row.Duration,
		Description: row.Description,
		Thumbnail:   row.Thumbnail,
		PDFURL:      row.PDFURL,
		ExamID:      row.ExamID.String(),
	}
	for _, p := range row.Parts {
		lec.Parts = append(lec.Parts, catalog.LecturePart{Title: p.Title, VideoURL: p.VideoURL})
	}
	return lec
}

type examRow struct {
	ID           json.Number `json:"id"`
	Title        string      `json:"title"`
	LectureID    json.Number `json:"lecture_id"`
	PassingScore int         `json:"passing_score"`
}

func (row examRow) normalize() catalog.Exam {
	return catalog.Exam{
		ID:           row.ID.String(),
		Title:        row.Title,
		LectureID:    row.LectureID.String(),
		PassingScore: row.PassingScore,
	}
}

type questionRow struct {
	ID            json.Number `json:"id"`
	ExamID        json.Number `json:"exam_id"`
	Text          string      `json:"text"`
	ImageURL      string      `json:"image_url"`
	OptionA       string      `json:"option_a"`
	OptionB       string      `json:"option_b"`
	OptionC       string      `json:"option_c"`
	OptionD       string      `json:"option_d"`
	CorrectAnswer int         `json:"correct_answer"`
}

func (row questionRow) normalize() catalog.Question {
	return catalog.Question{
		ID:            row.ID.String(),
		ExamID:        row.ExamID.String(),
		Text:          row.Text,
		Image:         row.ImageURL,
		Options:       []string{row.OptionA, row.OptionB, row.OptionC, row.OptionD},
		CorrectAnswer: row.CorrectAnswer,
	}
}

func (repo *catalogRepository) AllSubjects(ctx context.Context) ([]catalog.Subject, error) {
	var rows []subjectRow
	if err := repo.client.Do(ctx, NewQuery("subjects").OrderAsc("id"), &rows); err != nil {
		return nil, err
	}
	subjects := make([]catalog.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.normalize())
	}
	return subjects, nil
}

func (repo *catalogRepository) TeachersBySubject(ctx context.Context, subjectID string) ([]catalog.Teacher, error) {
	var rows []teacherRow
	if err := repo.client.Do(ctx, NewQuery("teachers").Eq("subject_id", subjectID), &rows); err != nil {
		return nil, err
	}
	teachers := make([]catalog.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.normalize())
	}
	return teachers, nil
}

func (repo *catalogRepository) CoursesByTeacher(ctx context.Context, teacherID string) ([]catalog.Course, error) {
	var rows []courseRow
	if err := repo.client.Do(ctx, NewQuery("courses").Eq("teacher_id", teacherID), &rows); err != nil {
		return nil, err
	}
	courses := make([]catalog.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.normalize())
	}
	return courses, nil
}

func (repo *catalogRepository) LecturesByCourse(ctx context.Context, courseID string) ([]catalog.Lecture, error) {
	return repo.lectures(ctx, NewQuery("lectures").Eq("course_id", courseID).OrderAsc("id"))
}

func (repo *catalogRepository) RecentLectures(ctx context.Context, limit int) ([]catalog.Lecture, error) {
	return repo.lectures(ctx, NewQuery("lectures").OrderDesc("id").Limit(limit))
}

func (repo *catalogRepository) lectures(ctx context.Context, q *Query) ([]catalog.Lecture, error) {
	var rows []lectureRow
	if err := repo.client.Do(ctx, q, &rows); err != nil {
		return nil, err
	}
	lectures := make([]catalog.Lecture, 0, len(rows))
	for _, row := range rows {
		lectures = append(lectures, row.normalize())
	}
	return lectures, nil
}

func (repo *catalogRepository) GetLectureByID(ctx context.Context, id string) (catalog.Lecture, error) {
	lectures, err := repo.lectures(ctx, NewQuery("lectures").Eq("id", id))
	if err != nil {
		return catalog.Lecture{}, err
	}
	if len(lectures) == 0 {
		return catalog.Lecture{}, catalog.ErrNotFound
	}
	return lectures[0], nil
}

func (repo *catalogRepository) GetExamByID(ctx context.Context, id string) (catalog.Exam, error) {
	var rows []examRow
	if err := repo.client.Do(ctx, NewQuery("exams").Eq("id", id), &rows); err != nil {
		return catalog.Exam{}, err
	}
	if len(rows) == 0 {
		return catalog.Exam{}, catalog.ErrNotFound
	}
	return rows[0].normalize(), nil
}

func (repo *catalogRepository) QuestionsByExam(ctx context.Context, examID string) ([]catalog.Question, error) {
	var rows []questionRow
	if err := repo.client.Do(ctx, NewQuery("questions").Eq("exam_id", examID).OrderAsc("id"), &rows); err != nil {
		return nil, err
	}
	questions := make([]catalog.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.normalize())
	}
	return questions, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
