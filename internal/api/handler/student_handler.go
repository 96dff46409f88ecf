package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// resumeField is the multipart field the resume file is sent in.
const resumeField = "file"

// StudentHandler serves the student's own profile and the student lookups
// available to other roles.
type StudentHandler struct {
	students       ports.StudentService
	maxUploadBytes int64
}

// NewStudentHandler returns a StudentHandler. maxUploadBytes caps the whole
// multipart body of a resume upload; zero or less disables the cap.
func NewStudentHandler(students ports.StudentService, maxUploadBytes int64) *StudentHandler {
	return &StudentHandler{students: students, maxUploadBytes: maxUploadBytes}
}

// Profile handles GET /student/profile.
//
// @Summary      Get own profile
// @Tags         student
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  studentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /student/profile [get]
func (h *StudentHandler) Profile(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	student, err := h.students.GetProfile(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentResponse{Student: student})
}

// SaveProfile handles POST /student/profile. Only the fields present in the
// body are changed.
//
// @Summary      Save own profile
// @Tags         student
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Fields to update"
// @Success      200   {object}  studentMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /student/profile [post]
func (h *StudentHandler) SaveProfile(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	student, err := h.students.UpdateProfile(c.Request().Context(), id.SubjectID, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentMessageResponse{Message: "Profile saved", Student: student})
}

// UploadResume handles POST /student/profile/upload.
//
// @Summary      Upload resume
// @Tags         student
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Resume document"
// @Success      200   {object}  resumeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /student/profile/upload [post]
func (h *StudentHandler) UploadResume(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	req := c.Request()
	if h.maxUploadBytes > 0 {
		req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUploadBytes)
	}

	fh, err := c.FormFile(resumeField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large").SetInternal(err)
		}
		return domain.NewValidationError("No file uploaded")
	}

	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := h.students.UploadResume(req.Context(), id.SubjectID, ports.ResumeUpload{
		FileName: fh.Filename,
		Body:     file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resumeResponse{URL: res.URL, FileName: res.FileName})
}

// Get handles GET /students/:id. The route only admits the student themself,
// a recruiter or the TPO.
//
// @Summary      Get a student profile
// @Tags         student
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  studentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	student, err := h.students.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentResponse{Student: student})
}

// ListVerified handles GET /students/verified.
//
// @Summary      List verified students
// @Tags         student
// @Produce      json
// @Success      200  {object}  studentsResponse
// @Failure      500  {object}  errorResponse
// @Router       /students/verified [get]
func (h *StudentHandler) ListVerified(c echo.Context) error {
	students, err := h.students.ListVerified(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentsResponse{Students: nonNil(students)})
}
