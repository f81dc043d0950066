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

// Package table provides structural helpers for defining tables, and builds
// the summary-statistics table shown alongside a ridgeline plot.
//
// Given a dedicated tableRoot util.DataBuilder representing the root node of
// the table, and which must not be used for any other purpose, a new Table
// may be created via
//
//	table := New(tableRoot, renderSettings, ...columns)
//
// and rows added via
//
//	row := table.Row(...<Cell() or FormattedCell()>)
//
// The structure of a table in a response, with each level representing a
// DataSeries or nested Datum is:
//
//	table
//	  properties
//	    * render settings
//	  children:
//	    * header row
//	    * repeated rows
//
//	header row
//	  children
//	    * repeated column definition
//
//	column definition
//	  properties
//	    * category definition
//	    * <decorators>
//
//	row
//	  properties
//	    * <decorators>
//	  children
//	    * repeated cells and formatted cells
//
//	cell
//	  properties
//	    * column tag
//	    * cellKey: Value (cell contents)
//	    * <decorators>
//
//	formatted cell
//	  properties
//	    * column tag
//	    * formattedCellKey: StringValue (cell format string)
//	    * <decorators>
package table

import (
	"github.com/ilhamster/burdenviz/category"
	"github.com/ilhamster/burdenviz/util"
)

const (
	cellKey          = "table_cell"
	formattedCellKey = "table_formatted_cell"

	rowHeightPxKey = "table_row_height_px"
	fontSizePxKey  = "table_font_size_px"
)

// RenderSettings is a collection of rendering settings for tables.
type RenderSettings struct {
	// The height of a row in pixels.
	RowHeightPx int64
	// The table text font size in pixels.
	FontSizePx int64
}

func (rs *RenderSettings) define() util.PropertyUpdate {
	if rs == nil {
		return util.EmptyUpdate
	}
	return util.Chain(
		util.IntegerProperty(rowHeightPxKey, rs.RowHeightPx),
		util.IntegerProperty(fontSizePxKey, rs.FontSizePx),
	)
}

// ColumnUpdate couples a column's category with arbitrary column properties.
type ColumnUpdate struct {
	cat        *category.Category
	properties []util.PropertyUpdate
}

// Column returns a new column with the specified category and properties.
func Column(cat *category.Category, properties ...util.PropertyUpdate) *ColumnUpdate {
	return &ColumnUpdate{
		cat:        cat,
		properties: append(properties, cat.Define()),
	}
}

// With annotates the receiving column with the provided properties.
func (cu *ColumnUpdate) With(properties ...util.PropertyUpdate) *ColumnUpdate {
	cu.properties = append(cu.properties, properties...)
	return cu
}

// ID returns the receiver's category ID.
func (cu *ColumnUpdate) ID() string {
	return cu.cat.ID()
}

// CellUpdate is a PropertyUpdate specifically annotating a cell.
type CellUpdate util.PropertyUpdate

// Cell returns a CellUpdate annotating a Datum as a cell in the provided
// column holding the provided value.  Any provided cellUpdates are also
// applied.
func Cell(column *ColumnUpdate, value util.Value, cellUpdates ...util.PropertyUpdate) CellUpdate {
	return CellUpdate(util.Chain(append(cellUpdates,
		column.cat.Tag(),
		value(cellKey),
	)...))
}

// FormattedCell returns a CellUpdate annotating a Datum as a cell in the
// provided column whose contents are the provided format string, in which
// `$(key)` is replaced by the cell's `key` property.  The properties the
// format references should be among cellUpdates.
func FormattedCell(column *ColumnUpdate, format string, cellUpdates ...util.PropertyUpdate) CellUpdate {
	return CellUpdate(util.Chain(append(cellUpdates,
		column.cat.Tag(),
		util.StringProperty(formattedCellKey, format),
	)...))
}

// Table is a table embedded in a response.
type Table struct {
	db util.DataBuilder
}

// New defines a new table in the provided DataBuilder, with the specified
// columns in order.
func New(db util.DataBuilder, renderSettings *RenderSettings, columns ...*ColumnUpdate) *Table {
	header := db.Child()
	for _, column := range columns {
		header.Child().With(column.properties...)
	}
	db.With(renderSettings.define())
	return &Table{
		db: db,
	}
}

// With annotates the receiving table with the provided properties.
func (t *Table) With(properties ...util.PropertyUpdate) *Table {
	t.db.With(properties...)
	return t
}

// Row adds a row holding the provided cells, in order, to the receiver.
func (t *Table) Row(cells ...CellUpdate) *Row {
	db := t.db.Child()
	for _, cell := range cells {
		db.Child().With(util.PropertyUpdate(cell))
	}
	return &Row{
		db: db,
	}
}

// Row is a table row.
type Row struct {
	db util.DataBuilder
}

// With annotates the receiving row with the provided properties.
func (r *Row) With(properties ...util.PropertyUpdate) *Row {
	r.db.With(properties...)
	return r
}
