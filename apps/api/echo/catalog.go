package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core/catalog"
)

type catalogApi struct {
	svc *catalog.Service
}

func registerCatalogAPI(g *echo.Group, jwt, guard echo.MiddlewareFunc, deps ServerDeps) {
	api := catalogApi{svc: deps.CatalogSvc}

	// all catalog content requires a live session
	cg := g.Group("", jwt, guard)
	cg.GET("/subjects", api.querySubjects)
	cg.GET("/subjects/:id/teachers", api.queryTeachers)
	cg.GET("/teachers/:id/courses", api.queryCourses)
	cg.GET("/courses/:id/lectures", api.queryLectures)
	cg.GET("/lectures/recent", api.queryRecentLectures)
	cg.GET("/lectures/:id", api.retrieveLecture)
	cg.GET("/exams/:id", api.retrieveExam)
	cg.GET("/exams/:id/questions", api.queryQuestions)
	cg.POST("/exams/:id/grade", api.gradeExam)
}

// Handlers

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.Subjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *catalogApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.svc.Teachers(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.Courses(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) queryLectures(ctx echo.Context) error {
	lectures, err := api.svc.Lectures(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying lectures")
	}
	return ctx.JSON(http.StatusOK, lectures)
}

func (api *catalogApi) queryRecentLectures(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	lectures, err := api.svc.RecentLectures(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying recent lectures")
	}
	return ctx.JSON(http.StatusOK, lectures)
}

func (api *catalogApi) retrieveLecture(ctx echo.Context) error {
	lecture, err := api.svc.GetLecture(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding lecture by ID")
	}
	return ctx.JSON(http.StatusOK, lecture)
}

func (api *catalogApi) retrieveExam(ctx echo.Context) error {
	exam, err := api.svc.GetExam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding exam by ID")
	}
	return ctx.JSON(http.StatusOK, exam)
}

func (api *catalogApi) queryQuestions(ctx echo.Context) error {
	questions, err := api.svc.Questions(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *catalogApi) gradeExam(ctx echo.Context) error {
	var data GradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeRequest")
	}

	reqCtx := ctx.Request().Context()
	exam, err := api.svc.GetExam(reqCtx, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding exam by ID")
	}
	questions, err := api.svc.Questions(reqCtx, exam.ID)
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}

	return ctx.JSON(http.StatusOK, catalog.GradeQuiz(exam, questions, data.Answers))
}

type GradeRequest struct {
	// Answers maps a question index to the chosen option index.
	Answers map[int]int `json:"answers"`
}
