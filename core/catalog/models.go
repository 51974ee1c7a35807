package catalog

type Subject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Category     string `json:"category,omitempty"`
	LessonsCount int    `json:"lessons_count,omitempty"`
}

type Teacher struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Avatar    string  `json:"avatar"`
	SubjectID string  `json:"subject_id"`
	Rating    float64 `json:"rating"`
	Specialty string  `json:"specialty"`
}

type Course struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	TeacherID    string `json:"teacher_id"`
	Thumbnail    string `json:"thumbnail"`
	LectureCount int    `json:"lecture_count"`
	Duration     string `json:"duration"`
}

type LecturePart struct {
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}

type Lecture struct {
	ID          string        `json:"id"`
	CourseID    string        `json:"course_id"`
	Title       string        `json:"title"`
	VideoURL    string        `json:"video_url"`
	Duration    string        `json:"duration"`
	Description string        `json:"description"`
	Thumbnail   string        `json:"thumbnail"`
	PDFURL      string        `json:"pdf_url,omitempty"`
	ExamID      string        `json:"exam_id,omitempty"`
	Parts       []LecturePart `json:"parts,omitempty"`
}

type Exam struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	LectureID    string `json:"lecture_id,omitempty"`
	PassingScore int    `json:"passing_score"`
}

// Question options are always four entries (a through d); the store's
// per-column shape is normalized away at the gateway boundary.
type Question struct {
	ID            string   `json:"id"`
	ExamID        string   `json:"exam_id"`
	Text          string   `json:"text"`
	Image         string   `json:"image,omitempty"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}
