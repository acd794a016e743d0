package render

import (
	"html/template"
	"io"

	"github.com/fakhrymubarak/cropcast/internal/model"
)

// PageData is everything the interactive page shows.
type PageData struct {
	Query   string
	Alert   string
	Surface model.SurfaceState
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Crop &amp; Weather Forecast</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body class="{{.Surface.Theme}}">
<main class="container">
<h1>15-Day Weather &amp; Crop Advisor</h1>
<form method="get" action="/" class="search">
<input id="city" name="location" type="text" placeholder="Enter city name" value="{{.Query}}">
<button id="searchBtn" type="submit">Get Forecast</button>
</form>
{{if .Alert}}<div class="alert" role="alert">{{.Alert}}</div>{{end}}
<div id="forecast">{{.ForecastHTML}}</div>
<div id="cropAdvice">{{.AdvisoryHTML}}</div>
</main>
</body>
</html>
`))

type pageView struct {
	PageData
	ForecastHTML template.HTML
	AdvisoryHTML template.HTML
}

// WritePage renders the full page. The surface regions were rendered by this package
// when they were stored, so they are emitted unescaped.
func WritePage(w io.Writer, data PageData) error {
	if data.Surface.Theme == "" {
		data.Surface.Theme = model.ThemeDefault
	}
	return pageTmpl.Execute(w, pageView{
		PageData:     data,
		ForecastHTML: template.HTML(data.Surface.ForecastHTML),
		AdvisoryHTML: template.HTML(data.Surface.AdvisoryHTML),
	})
}
