package echoweb

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/testutil"
)

func studentForm(first, last string) url.Values {
	return url.Values{
		"first_name": {first},
		"last_name":  {last},
		"alias":      {"  " + first + "x  "},
		"grad_year":  {"2024"},
		"email":      {first + "@school.test"},
	}
}

func withField(form url.Values, key, value string) url.Values {
	f := make(url.Values, len(form)+1)
	for k, v := range form {
		f[k] = v
	}
	f.Set(key, value)
	return f
}

func TestStudentHandlers(t *testing.T) {
	srv := setup(t)
	ctx := context.Background()

	ada := testutil.CreateStudent(t, studentRepo, "Ada", "Lovelace", "countess")
	testutil.CreateStudent(t, studentRepo, "Alan", "Turing", "enigma")
	essay := testutil.CreateAssignment(t, assignmentRepo, "Essay", 10, true)
	testutil.CreateGrade(t, gradeRepo, ada, essay, 9, "sharp")

	runHTTPTests(t, srv, []httpTest{
		{name: "list", path: "/students/", wantCode: http.StatusOK, wantBody: []string{"Ada Lovelace", "Alan Turing"}},
		{name: "list ordered", path: "/students/?ordering=-last_name", wantCode: http.StatusOK},
		{name: "list unknown ordering", path: "/students/?ordering=lol", wantCode: http.StatusBadRequest, wantBody: []string{"cannot order by"}},
		{name: "view", path: "/students/view/1/", wantCode: http.StatusOK, wantBody: []string{"Ada Lovelace", "Essay", "sharp"}},
		{name: "view not found", path: "/students/view/99/", wantCode: http.StatusNotFound},
		{name: "view bad id", path: "/students/view/abc/", wantCode: http.StatusNotFound},
		{name: "create form", path: "/students/create/", wantCode: http.StatusOK, wantBody: []string{`name="create_and_add"`}},
		{name: "create invalid grad year", method: http.MethodPost, path: "/students/create/",
			form: withField(studentForm("Grace", "Hopper"), "grad_year", "soon"), wantCode: http.StatusBadRequest, wantBody: []string{"grad_year"}},
		{name: "create grad year out of range", method: http.MethodPost, path: "/students/create/",
			form: withField(studentForm("Grace", "Hopper"), "grad_year", "3000000000"), wantCode: http.StatusBadRequest, wantBody: []string{"grad_year is out of range"}},
		{name: "update form", path: "/students/update/1/", wantCode: http.StatusOK, wantBody: []string{`value="Lovelace"`}},
		{name: "update not found", method: http.MethodPost, path: "/students/update/99/", form: studentForm("X", "Y"), wantCode: http.StatusNotFound},
		{name: "delete not found", method: http.MethodPost, path: "/students/delete/99/", wantCode: http.StatusNotFound},
	})

	t.Run("create", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/students/create/", withField(studentForm("Grace", "Hopper"), "create", "1"))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/students/view/3/", rec.Header().Get("Location"))

		s, err := studentRepo.GetStudent(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Grace", s.FirstName)
		assert.Equal(t, "Gracex", s.Alias)
		assert.Equal(t, 2024, s.GradYear.Int)
	})

	t.Run("create without intent", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/students/create/", studentForm("Edsger", "Dijkstra"))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/students/view/4/", rec.Header().Get("Location"))
	})

	t.Run("create and add another", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/students/create/", withField(studentForm("Barbara", "Liskov"), "create_and_add", "1"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Created Barbara Liskov.")
		assert.Contains(t, rec.Body.String(), `name="first_name" value=""`)

		_, err := studentRepo.GetStudent(ctx, 5)
		assert.NoError(t, err)
	})

	t.Run("update", func(t *testing.T) {
		form := withField(studentForm("Ada", "King"), "grad_year", "")
		rec := do(srv, http.MethodPost, "/students/update/1/", form)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/students/view/1/", rec.Header().Get("Location"))

		s, err := studentRepo.GetStudent(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "King", s.LastName)
		assert.False(t, s.GradYear.Valid)

		// same data again changes nothing
		rec = do(srv, http.MethodPost, "/students/update/1/", form)
		assert.Equal(t, http.StatusFound, rec.Code)
		again, err := studentRepo.GetStudent(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, s, again)
	})

	t.Run("delete needs confirmation", func(t *testing.T) {
		rec := do(srv, http.MethodGet, "/students/delete/1/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `method="post"`)

		_, err := studentRepo.GetStudent(ctx, ada.ID)
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/students/delete/1/", url.Values{})
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/students/", rec.Header().Get("Location"))

		_, err := studentRepo.GetStudent(ctx, ada.ID)
		assert.Equal(t, student.ErrNotFound, err)

		grades, err := gradeRepo.QueryGrades(ctx, grade.Filter{StudentID: ada.ID})
		require.NoError(t, err)
		assert.Empty(t, grades)
	})
}
