package render

import (
	"bytes"
	"html/template"

	"github.com/fakhrymubarak/cropcast/internal/model"
	"github.com/fakhrymubarak/cropcast/internal/weathercode"
)

var funcs = template.FuncMap{
	"date":     FormatDate,
	"num":      formatNumber,
	"oneDec":   formatOneDecimal,
	"describe": weathercode.Describe,
}

var forecastTmpl = template.Must(template.New("forecast").Funcs(funcs).Parse(
	`<h2>{{.Location}}</h2><div class="forecast-grid">` +
		`{{range .Days}}<div class="day-card">` +
		`<h3>{{date .Date}}</h3>` +
		`<p><b>Max:</b> {{num .MaxTempC}}°C</p>` +
		`<p><b>Min:</b> {{num .MinTempC}}°C</p>` +
		`<p><b>Rain:</b> {{num .PrecipitationMM}} mm</p>` +
		`<p>{{describe .WeatherCode}}</p>` +
		`</div>{{end}}</div>`))

var messageTmpl = template.Must(template.New("message").Parse(`<p>{{.}}</p>`))

// ForecastRegion renders the forecast region for a display: a card per day in input order
// for a successful lookup, or the display's message otherwise.
func ForecastRegion(d *model.Display) (template.HTML, error) {
	var buf bytes.Buffer
	var err error
	if d.Status == model.StatusOK {
		err = forecastTmpl.Execute(&buf, d)
	} else {
		err = messageTmpl.Execute(&buf, d.Message)
	}
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
