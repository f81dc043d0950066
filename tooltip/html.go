/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package tooltip

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

const htmlTemplate = `<div class="tooltip">
{{- range .Fields}}<div><b>{{.Title}}:</b> {{.Value}}</div>{{end -}}
{{- if .Content.HasSummary}}<div><b>Mean:</b> {{.Content.Mean}}</div><div><b>95% CI:</b> [{{.Content.CILower}}, {{.Content.CIUpper}}]</div>{{end -}}
</div>`

var tooltipTemplate = template.Must(template.New("tooltip").Parse(htmlTemplate))

// HTML returns the receiver as escaped HTML.
func (c Content) HTML() (safehtml.HTML, error) {
	var fields []*Field
	for _, f := range []*Field{c.Color, c.Row, c.Column} {
		if f != nil {
			fields = append(fields, f)
		}
	}
	return tooltipTemplate.ExecuteToHTML(struct {
		Fields  []*Field
		Content Content
	}{fields, c})
}
