package render

import (
	"bytes"
	"html/template"

	"github.com/fakhrymubarak/cropcast/internal/model"
)

var advisoryTmpl = template.Must(template.New("advisory").Funcs(funcs).Parse(
	`<div class="crop-card">` +
		`<h2>Recommended Crops &amp; Fruits:</h2>` +
		`<p><b>Avg Temp:</b> {{oneDec .AvgTempC}}°C</p>` +
		`<p><b>Total Rain:</b> {{oneDec .TotalRainMM}} mm</p>` +
		`<hr>` +
		`{{range .Recommendations}}<p><b>{{.Name}}</b></p><p>{{.Reason}}</p><br>{{end}}` +
		`</div>`))

// AdvisoryRegion renders the statistics and recommendations of a successful lookup.
// Any other display clears the region.
func AdvisoryRegion(d *model.Display) (template.HTML, error) {
	if d.Status != model.StatusOK || d.Advisory == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := advisoryTmpl.Execute(&buf, d.Advisory); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
