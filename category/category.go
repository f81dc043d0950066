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

// Package category supports declaring chart categories: axes, table columns,
// and plotted series.  A DataBuilder may Define one Category, and Datums
// elsewhere in the response may be tagged as belonging to it.
package category

import (
	"fmt"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/util"
)

const (
	categoryDefinedIDKey   = "category_defined_id"
	categoryDescriptionKey = "category_description"
	categoryDisplayNameKey = "category_display_name"
	categoryIDsKey         = "category_ids"
)

// Category is a chart category.
type Category struct {
	id, displayName, description string
}

// New returns a new Category with the provided ID, display name, and
// description.
func New(id, displayName, description string) *Category {
	return &Category{
		id:          id,
		displayName: displayName,
		description: description,
	}
}

// ForDimension returns the Category of the provided burden dimension.
func ForDimension(dim burden.Dimension) *Category {
	return New(string(dim), dim.Title(), fmt.Sprintf("Estimates by %s", dim.Title()))
}

// ForValue returns the Category of a single value on the provided dimension,
// displayed with the provided label.
func ForValue(dim burden.Dimension, value, label string) *Category {
	return New(fmt.Sprintf("%s:%s", dim, value), label, fmt.Sprintf("%s %s", dim.Title(), label))
}

// Define defines the receiver.  Only the last Category defined on a Datum
// takes effect.
func (c *Category) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(categoryDefinedIDKey, c.id),
		util.StringProperty(categoryDisplayNameKey, c.displayName),
		util.StringProperty(categoryDescriptionKey, c.description),
	)
}

// ID returns the receiver's ID.
func (c *Category) ID() string {
	return c.id
}

// DisplayName returns the receiver's display name.
func (c *Category) DisplayName() string {
	return c.displayName
}

// Tag tags a Datum as belonging to the receiver, in addition to any
// categories it is already tagged with.
func (c *Category) Tag() util.PropertyUpdate {
	return util.StringsPropertyExtended(categoryIDsKey, c.id)
}

// Tag tags a Datum with each of the provided Categories.
func Tag(cats ...*Category) util.PropertyUpdate {
	ids := make([]string, len(cats))
	for idx, cat := range cats {
		ids[idx] = cat.id
	}
	return util.StringsPropertyExtended(categoryIDsKey, ids...)
}
