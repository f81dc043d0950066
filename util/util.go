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

// Package util defines the wire format shared by burdenviz data sources and
// the dashboard frontend:
//
// DataResponseBuilder, for populating responses to DataRequests;
//
// {type}Value functions (type={String, Strings, Integer, Double, Doubles,
// Bool}) for safely constructing Values of the specified type;
//
// Expect{type}Value functions, over the same types, for safely retrieving
// values of the specified types from Values, returning an error if there's a
// type mismatch;
//
// DataBuilder, for assembling response data programmatically.
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type valueType int

// Enumerated value types.
const (
	unsetValue valueType = iota
	StringValueType
	StringIndexValueType
	StringsValueType
	StringIndicesValueType
	IntegerValueType
	DoubleValueType
	DoublesValueType
	BoolValueType
)

// V represents a value in a burdenviz request or response.
type V struct {
	V any
	T valueType
}

// PrettyPrint returns the receiver, deterministically prettyprinted.
// String-index-type values prettyprint the same as the corresponding
// literal-string-type values.  Only for use in tests.
func (v *V) PrettyPrint(st []string) string {
	var ret string
	var err error
	switch v.T {
	case unsetValue:
		ret = "unset"
	case StringValueType:
		ret, err = ExpectStringValue(v)
		ret = "'" + ret + "'"
	case StringIndexValueType:
		var strIdx int64
		strIdx, err = expectStringIndexValue(v)
		if err == nil {
			ret = "'" + st[strIdx] + "'"
		}
	case StringsValueType:
		var strs []string
		strs, err = ExpectStringsValue(v)
		ret = "[ '" + strings.Join(strs, "', '") + "' ]"
	case StringIndicesValueType:
		var strIdxs []int64
		strIdxs, err = expectStringIndicesValue(v)
		if err == nil {
			strs := make([]string, len(strIdxs))
			for idx, strIdx := range strIdxs {
				strs[idx] = st[strIdx]
			}
			ret = "[ '" + strings.Join(strs, "', '") + "' ]"
		}
	case IntegerValueType:
		var i int64
		i, err = ExpectIntegerValue(v)
		if err == nil {
			ret = strconv.FormatInt(i, 10)
		}
	case DoubleValueType:
		var d float64
		d, err = ExpectDoubleValue(v)
		if err == nil {
			ret = fmt.Sprintf("%.6f", d)
		}
	case DoublesValueType:
		var ds []float64
		ds, err = ExpectDoublesValue(v)
		if err == nil {
			strs := make([]string, len(ds))
			for idx, d := range ds {
				strs[idx] = fmt.Sprintf("%.6f", d)
			}
			ret = "[ " + strings.Join(strs, ", ") + " ]"
		}
	case BoolValueType:
		var b bool
		b, err = ExpectBoolValue(v)
		if err == nil {
			ret = strconv.FormatBool(b)
		}
	}
	if err != nil {
		return "error: " + err.Error()
	}
	return ret
}

// MarshalJSON overrides the default JSON marshaling behavior for V to reduce
// response sizes.  A V is encoded as the JS object `V`:
//
//	type V = [number,                 ; from valueType, above
//	  null     |                      ; if unset
//	  string   |                      ; if string
//	  number   |                      ; if integer, string index, or double
//	  boolean  |                      ; if bool
//	  string[] |                      ; if strings
//	  number[]                        ; if doubles or string indices
//	]
func (v *V) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{v.T, v.V})
}

func (v *V) fromAny(got []any) error {
	if len(got) != 2 {
		return fmt.Errorf("value is improperly formed")
	}
	t, err := got[0].(json.Number).Int64()
	if err != nil {
		return err
	}
	v.T = valueType(t)
	tv := got[1]
	switch v.T {
	case StringIndexValueType, IntegerValueType:
		v.V, err = tv.(json.Number).Int64()
	case DoubleValueType:
		v.V, err = tv.(json.Number).Float64()
	case StringsValueType:
		strIfs := tv.([]any)
		strs := make([]string, len(strIfs))
		for idx, strIf := range strIfs {
			str, err := url.QueryUnescape(strIf.(string))
			if err != nil {
				return err
			}
			strs[idx] = str
		}
		v.V = strs
	case StringIndicesValueType:
		nums := tv.([]any)
		ints := make([]int64, len(nums))
		for idx, num := range nums {
			if ints[idx], err = num.(json.Number).Int64(); err != nil {
				return err
			}
		}
		v.V = ints
	case DoublesValueType:
		nums := tv.([]any)
		dbls := make([]float64, len(nums))
		for idx, num := range nums {
			if dbls[idx], err = num.(json.Number).Float64(); err != nil {
				return err
			}
		}
		v.V = dbls
	case BoolValueType:
		b, ok := tv.(bool)
		if !ok {
			return fmt.Errorf("bool Value is improperly formed")
		}
		v.V = b
	default:
		v.V = tv
	}
	return err
}

// UnmarshalJSON unmarshals the provided JSON bytes into the receiving V.
func (v *V) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	return v.fromAny(got)
}

// Datum represents a single Datum in a burdenviz data series response.
type Datum struct {
	Properties map[int64]*V
	Children   []*Datum
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (d *Datum) PrettyPrint(indent string, st []string) string {
	ret := []string{}
	// Emit properties in increasing alphabetic order.
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return st[keys[a]] < st[keys[b]]
	})
	for _, k := range keys {
		ret = append(ret,
			fmt.Sprintf("%sProp '%s': %s", indent, st[k], d.Properties[k].PrettyPrint(st)),
		)
	}
	for _, child := range d.Children {
		ret = append(ret,
			fmt.Sprintf("%sChild:", indent),
			child.PrettyPrint(indent+"  ", st),
		)
	}
	return strings.Join(ret, "\n")
}

// MarshalJSON overrides the default JSON marshaling behavior for Datum to
// reduce response sizes.  A Datum is encoded as the JS object `Datum`:
//
//	type V as defined above
//	type KV = [number, V]
//	type Datum = [
//	  KV[],                        ; its Properties
//	  Datum[],                     ; its Children
//	]
func (d *Datum) MarshalJSON() ([]byte, error) {
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return keys[a] < keys[b]
	})
	props := make([]any, len(keys))
	for idx, k := range keys {
		props[idx] = []any{k, d.Properties[k]}
	}
	children := make([]any, len(d.Children))
	for idx, child := range d.Children {
		children[idx] = child
	}
	return json.Marshal([]any{props, children})
}

// DataSeriesRequest is a request for a specific data series from a dashboard
// client.
type DataSeriesRequest struct {
	QueryName  string
	SeriesName string
	Options    map[string]*V
}

// DataSeries represents a complete data series response.
type DataSeries struct {
	SeriesName string
	Root       *Datum
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (ds *DataSeries) PrettyPrint(indent string, st []string) string {
	return strings.Join([]string{
		fmt.Sprintf("%sSeries %s", indent, ds.SeriesName),
		indent + "  " + "Root:",
		ds.Root.PrettyPrint(indent+"    ", st),
	}, "\n")
}

// DataRequest is a request for one or more data series from a dashboard
// client.  GlobalFilters carries the client's current selection.
type DataRequest struct {
	GlobalFilters  map[string]*V
	SeriesRequests []*DataSeriesRequest
}

// DataRequestFromJSON attempts to construct a DataRequest from the provided
// JSON.
func DataRequestFromJSON(j []byte) (*DataRequest, error) {
	ret := &DataRequest{}
	err := json.Unmarshal(j, ret)
	return ret, err
}

// Data represents a complete data response.
type Data struct {
	StringTable []string
	DataSeries  []*DataSeries
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (d *Data) PrettyPrint() string {
	ret := []string{"Data:"}
	for _, series := range d.DataSeries {
		ret = append(ret, series.PrettyPrint("  ", d.StringTable))
	}
	return strings.Join(ret, "\n")
}

// stringTable associates strings to unique integers.  It is thread-safe.
type stringTable struct {
	stringsToIndices map[string]int64
	stringsByIndex   []string
	mu               sync.RWMutex
}

func newStringTable(strs ...string) *stringTable {
	ret := &stringTable{
		stringsToIndices: map[string]int64{},
	}
	for _, str := range strs {
		ret.stringIndex(str)
	}
	return ret
}

func (st *stringTable) lookupStringIndex(str string) (int64, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	idx, ok := st.stringsToIndices[str]
	return idx, ok
}

// stringIndex returns the index in the receiver for the provided string,
// adding it if necessary.
func (st *stringTable) stringIndex(str string) int64 {
	if idx, ok := st.lookupStringIndex(str); ok {
		return idx
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	// Another writer may have inserted it between the lookup and the lock.
	if idx, ok := st.stringsToIndices[str]; ok {
		return idx
	}
	idx := int64(len(st.stringsByIndex))
	st.stringsByIndex = append(st.stringsByIndex, str)
	st.stringsToIndices[str] = idx
	return idx
}

type errors struct {
	hasError bool
	errs     []error
	mu       sync.Mutex
}

func (errs *errors) add(err error) {
	errs.mu.Lock()
	defer errs.mu.Unlock()
	errs.hasError = true
	errs.errs = append(errs.errs, err)
}

func (errs *errors) failed() bool {
	errs.mu.Lock()
	defer errs.mu.Unlock()
	return errs.hasError
}

func (errs *errors) Error() string {
	ret := make([]string, 0, len(errs.errs))
	for _, err := range errs.errs {
		ret = append(ret, err.Error())
	}
	return strings.Join(ret, ", ")
}

func (errs *errors) toError() error {
	if len(errs.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", errs.Error())
}

// DataResponseBuilder streamlines assembling responses to DataRequests.
type DataResponseBuilder struct {
	st   *stringTable
	errs *errors
	d    *Data
	mu   sync.Mutex
}

// NewDataResponseBuilder returns a new, empty DataResponseBuilder.
func NewDataResponseBuilder() *DataResponseBuilder {
	return &DataResponseBuilder{
		st:   newStringTable(),
		errs: &errors{},
		d: &Data{
			StringTable: []string{},
			DataSeries:  []*DataSeries{},
		},
	}
}

// DataBuilder is implemented by types that can assemble responses.
type DataBuilder interface {
	With(updates ...PropertyUpdate) DataBuilder
	Child() DataBuilder
}

// DataSeries returns a new DataBuilder for assembling the response to the
// provided DataSeriesRequest.  DataSeries is safe for concurrent use.
func (drb *DataResponseBuilder) DataSeries(req *DataSeriesRequest) DataBuilder {
	ret := newDatumBuilder(drb.errs, drb.st)
	ds := &DataSeries{
		SeriesName: req.SeriesName,
		Root:       ret.d,
	}
	drb.mu.Lock()
	drb.d.DataSeries = append(drb.d.DataSeries, ds)
	drb.mu.Unlock()
	return ret
}

// Data completes and returns the Data under construction.
func (drb *DataResponseBuilder) Data() (*Data, error) {
	if drb.errs.failed() {
		return nil, drb.errs.toError()
	}
	drb.d.StringTable = drb.st.stringsByIndex
	return drb.d, nil
}

// StringValue returns a new Value wrapping the provided string.
func StringValue(str string) *V {
	return &V{V: str, T: StringValueType}
}

// StringIndexValue returns a new Value wrapping the provided string index.
func StringIndexValue(strIdx int64) *V {
	return &V{V: strIdx, T: StringIndexValueType}
}

// StringsValue returns a new Value wrapping the provided strings.
func StringsValue(strs ...string) *V {
	return &V{V: strs, T: StringsValueType}
}

// StringIndicesValue returns a new Value wrapping the provided string
// indices.
func StringIndicesValue(strIdxs ...int64) *V {
	return &V{V: strIdxs, T: StringIndicesValueType}
}

// IntegerValue returns a new Value wrapping the provided int64.
func IntegerValue(i int64) *V {
	return &V{V: i, T: IntegerValueType}
}

// DoubleValue returns a new Value wrapping the provided float64.
func DoubleValue(f float64) *V {
	return &V{V: f, T: DoubleValueType}
}

// DoublesValue returns a new Value wrapping the provided float64s.
func DoublesValue(fs ...float64) *V {
	return &V{V: fs, T: DoublesValueType}
}

// BoolValue returns a new Value wrapping the provided bool.
func BoolValue(b bool) *V {
	return &V{V: b, T: BoolValueType}
}

// ExpectStringValue expects the provided Value to be a string, returning
// that string or an error if it isn't.
func ExpectStringValue(val *V) (string, error) {
	if val.T != StringValueType {
		return "", fmt.Errorf("expected value type 'str'")
	}
	return url.QueryUnescape(val.V.(string))
}

func expectStringIndexValue(val *V) (int64, error) {
	if val.T != StringIndexValueType {
		return 0, fmt.Errorf("expected value type 'str_idx'")
	}
	return val.V.(int64), nil
}

// ExpectStringsValue expects the provided Value to be a Strings, returning
// that Strings' contained string slice, or an error if it isn't.
func ExpectStringsValue(val *V) ([]string, error) {
	if val.T != StringsValueType {
		return nil, fmt.Errorf("expected value type 'strs'")
	}
	return val.V.([]string), nil
}

func expectStringIndicesValue(val *V) ([]int64, error) {
	if val.T != StringIndicesValueType {
		return nil, fmt.Errorf("expected value type 'str_idxs'")
	}
	return val.V.([]int64), nil
}

// ExpectIntegerValue expects the provided Value to be an integer, returning
// that integer or an error if it isn't.
func ExpectIntegerValue(val *V) (int64, error) {
	if val.T != IntegerValueType {
		return 0, fmt.Errorf("expected value type 'int'")
	}
	return val.V.(int64), nil
}

// ExpectDoubleValue expects the provided Value to be a float64, returning
// that float or an error if it isn't.
func ExpectDoubleValue(val *V) (float64, error) {
	if val.T != DoubleValueType {
		return 0, fmt.Errorf("expected value type 'dbl'")
	}
	return val.V.(float64), nil
}

// ExpectDoublesValue expects the provided Value to be a Doubles, returning
// its contained float64 slice or an error if it isn't.
func ExpectDoublesValue(val *V) ([]float64, error) {
	if val.T != DoublesValueType {
		return nil, fmt.Errorf("expected value type 'dbls'")
	}
	return val.V.([]float64), nil
}

// ExpectBoolValue expects the provided Value to be a bool, returning that
// bool or an error if it isn't.
func ExpectBoolValue(val *V) (bool, error) {
	if val.T != BoolValueType {
		return false, fmt.Errorf("expected value type 'bool'")
	}
	return val.V.(bool), nil
}

// PropertyUpdate is a function that updates a provided datumBuilder.  A nil
// PropertyUpdate does nothing.
type PropertyUpdate func(db *datumBuilder) error

// EmptyUpdate is a PropertyUpdate that does nothing.
var EmptyUpdate PropertyUpdate = nil


// datumBuilder programmatically assembles maps of Properties.
type datumBuilder struct {
	errs      *errors
	st        *stringTable
	valsByKey map[int64]*V
	d         *Datum
}

func newDatumBuilder(errs *errors, st *stringTable) *datumBuilder {
	valsByKey := map[int64]*V{}
	return &datumBuilder{
		errs:      errs,
		st:        st,
		valsByKey: valsByKey,
		d: &Datum{
			Properties: valsByKey,
			Children:   []*Datum{},
		},
	}
}

// With applies the provided PropertyUpdates to the receiver in order.  The
// first failing update poisons the whole response.
func (db *datumBuilder) With(updates ...PropertyUpdate) DataBuilder {
	if db.errs.failed() {
		return db
	}
	for _, update := range updates {
		if update == nil {
			continue
		}
		if err := update(db); err != nil {
			db.errs.add(err)
			break
		}
	}
	return db
}

func (db *datumBuilder) Child() DataBuilder {
	child := newDatumBuilder(db.errs, db.st)
	db.d.Children = append(db.d.Children, child.d)
	return child
}

func (db *datumBuilder) set(key string, val *V) *datumBuilder {
	db.valsByKey[db.st.stringIndex(key)] = val
	return db
}

func (db *datumBuilder) withStr(key, value string) *datumBuilder {
	keyIdx := db.st.stringIndex(key)
	db.valsByKey[keyIdx] = StringIndexValue(db.st.stringIndex(value))
	return db
}

func (db *datumBuilder) withStrs(key string, values ...string) *datumBuilder {
	valIdxs := make([]int64, 0, len(values))
	for _, val := range values {
		valIdxs = append(valIdxs, db.st.stringIndex(val))
	}
	return db.set(key, StringIndicesValue(valIdxs...))
}

// appendStrs appends the specified strings to the value associated with the
// specified key.
func (db *datumBuilder) appendStrs(key string, values ...string) *datumBuilder {
	val, ok := db.valsByKey[db.st.stringIndex(key)]
	if !ok {
		return db.withStrs(key, values...)
	}
	strIdxs, err := expectStringIndicesValue(val)
	if err != nil {
		db.errs.add(err)
		return db
	}
	for _, val := range values {
		strIdxs = append(strIdxs, db.st.stringIndex(val))
	}
	val.V = strIdxs
	return db
}

// If applies the provided PropertyUpdate if the provided predicate is true.
func If(predicate bool, du PropertyUpdate) PropertyUpdate {
	if predicate {
		return du
	}
	return EmptyUpdate
}

// Chain applies the provided PropertyUpdates in order.
func Chain(updates ...PropertyUpdate) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.With(updates...)
		return nil
	}
}

// Value specifies a value for a property whose key is not yet known.
type Value func(key string) PropertyUpdate

// String produces a Value setting the specified string value.
func String(value string) Value {
	return func(key string) PropertyUpdate {
		return StringProperty(key, value)
	}
}



// StringProperty returns a PropertyUpdate adding the specified string property.
func StringProperty(key, value string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withStr(key, value)
		return nil
	}
}

// StringsProperty returns a PropertyUpdate adding the specified string slice
// property.
func StringsProperty(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.withStrs(key, values...)
		return nil
	}
}

// StringsPropertyExtended returns a PropertyUpdate extending the specified
// string slice property.
func StringsPropertyExtended(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.appendStrs(key, values...)
		return nil
	}
}

// IntegerProperty returns a PropertyUpdate adding the specified integer
// property.
func IntegerProperty(key string, value int64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, IntegerValue(value))
		return nil
	}
}

// DoubleProperty returns a PropertyUpdate adding the specified double
// property.
func DoubleProperty(key string, value float64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, DoubleValue(value))
		return nil
	}
}


// BoolProperty returns a PropertyUpdate adding the specified bool property.
func BoolProperty(key string, value bool) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, BoolValue(value))
		return nil
	}
}

// OptionalString returns the string option stored under key in opts, or def
// if there is none.
func OptionalString(opts map[string]*V, key, def string) (string, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	return ExpectStringValue(v)
}

// OptionalStrings returns the strings option stored under key in opts, or
// nil if there is none.
func OptionalStrings(opts map[string]*V, key string) ([]string, error) {
	v, ok := opts[key]
	if !ok {
		return nil, nil
	}
	return ExpectStringsValue(v)
}

// OptionalBool returns the bool option stored under key in opts, or false if
// there is none.
func OptionalBool(opts map[string]*V, key string) (bool, error) {
	v, ok := opts[key]
	if !ok {
		return false, nil
	}
	return ExpectBoolValue(v)
}
