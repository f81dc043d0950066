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

// Package label supports labeling renderable items and attaching hover
// tooltips to them.
package label

import "github.com/ilhamster/burdenviz/util"

const (
	// labelFormatKey specifies the label format string used to label items.
	labelFormatKey = "label_format"
	tooltipKey     = "tooltip"
	tooltipHTMLKey = "tooltip_html"
)

// Format returns a PropertyUpdate that labels with the provided format
// string, in which `$(key)` is replaced by the labeled Datum's `key`
// property.
func Format(labelFormat string) util.PropertyUpdate {
	return util.StringProperty(labelFormatKey, labelFormat)
}

// Tooltip returns a PropertyUpdate attaching a plain-text tooltip.  An empty
// tooltip is not attached.
func Tooltip(text string) util.PropertyUpdate {
	return util.If(text != "", util.StringProperty(tooltipKey, text))
}

// TooltipHTML returns a PropertyUpdate attaching an HTML tooltip, which
// must already be escaped.
func TooltipHTML(html string) util.PropertyUpdate {
	return util.If(html != "", util.StringProperty(tooltipHTMLKey, html))
}
