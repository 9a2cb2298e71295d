// Package pages renders the html pages of the task tracker.
package pages

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/jon4hz/tasktracker/internal/api/models"
	"github.com/jon4hz/tasktracker/web/templates/components"
)

//go:embed html/*.html
var files embed.FS

var (
	homeTemplate     = mustParse("home.html")
	registerTemplate = mustParse("register.html")
	loginTemplate    = mustParse("login.html")
	tasksTemplate    = mustParse("tasks.html")
	adminTemplate    = mustParse("admin.html")
)

// every page is the layout plus its own "content" block
func mustParse(page string) *template.Template {
	return template.Must(
		template.New("layout.html").
			Funcs(components.FuncMap()).
			ParseFS(files, "html/layout.html", "html/"+page),
	)
}

// Page holds what the layout needs on every page.
type Page struct {
	Title   string
	User    *models.Identity
	Results []models.Result
}

// LoginPage is the data of the login form.
type LoginPage struct {
	Page
	Username string
}

// TasksPage is the data of the task list.
type TasksPage struct {
	Page
	Tasks []models.TaskItem
}

// AdminPage is the data of the admin dashboard.
type AdminPage struct {
	Page
	Users      []models.UserItem
	TotalUsers int64
	TotalTasks int64
}

func Home(user *models.Identity, results []models.Result) templ.Component {
	return templ.FromGoHTML(homeTemplate, Page{Title: "Home", User: user, Results: results})
}

func Register(results []models.Result) templ.Component {
	return templ.FromGoHTML(registerTemplate, Page{Title: "Register", Results: results})
}

func Login(username string, results []models.Result) templ.Component {
	return templ.FromGoHTML(loginTemplate, LoginPage{
		Page:     Page{Title: "Login", Results: results},
		Username: username,
	})
}

func Tasks(user *models.Identity, tasks []models.TaskItem, results []models.Result) templ.Component {
	return templ.FromGoHTML(tasksTemplate, TasksPage{
		Page:  Page{Title: "My Tasks", User: user, Results: results},
		Tasks: tasks,
	})
}

func Admin(user *models.Identity, users []models.UserItem, results []models.Result) templ.Component {
	var totalTasks int64
	for _, u := range users {
		totalTasks += u.TaskCount
	}
	return templ.FromGoHTML(adminTemplate, AdminPage{
		Page:       Page{Title: "Admin Dashboard", User: user, Results: results},
		Users:      users,
		TotalUsers: int64(len(users)),
		TotalTasks: totalTasks,
	})
}
