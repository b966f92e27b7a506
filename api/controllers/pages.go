package controllers

import (
	"html/template"
	"net/http"
)

var pageShell = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>CampusBoard</title></head>
<body data-page="{{.}}"><div id="root"></div><script src="/static/app.js"></script></body>
</html>
`))

// Page serves the client shell for a gated page route. The route guards run
// before this handler, so reaching it means the visitor is allowed here.
func Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageShell.Execute(w, name)
	}
}
