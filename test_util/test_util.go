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

// Package testutil provides helpers for testing chart response construction.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ilhamster/burdenviz/util"
)

// UpdateComparator checks that a set of PropertyUpdates under test applies
// the same properties as a wanted set.
type UpdateComparator struct {
	got, want []util.PropertyUpdate
}

// NewUpdateComparator returns a new, empty UpdateComparator.
func NewUpdateComparator() *UpdateComparator {
	return &UpdateComparator{}
}

// WithTestUpdates sets the PropertyUpdates under test.
func (uc *UpdateComparator) WithTestUpdates(got ...util.PropertyUpdate) *UpdateComparator {
	uc.got = got
	return uc
}

// WithWantUpdates sets the PropertyUpdates the updates under test should
// match.
func (uc *UpdateComparator) WithWantUpdates(want ...util.PropertyUpdate) *UpdateComparator {
	uc.want = want
	return uc
}

// Compare applies the receiver's test and want updates to sibling Datums and
// compares them, returning a difference message and true if they differ.
// String-table order is not significant.
func (uc *UpdateComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	series.Child().With(uc.got...)
	series.Child().With(uc.want...)
	data, err := drb.Data()
	if err != nil {
		t.Fatalf("failed to build response: %s", err)
	}
	children := data.DataSeries[0].Root.Children
	if diff := cmp.Diff(
		children[1].PrettyPrint("", data.StringTable),
		children[0].PrettyPrint("", data.StringTable),
	); diff != "" {
		return fmt.Sprintf("Got series %s, diff (-want +got):\n%s",
			data.DataSeries[0].PrettyPrint("", data.StringTable), diff), true
	}
	return "", false
}

// TestDataBuilder fluently assembles expected responses in tests.
type TestDataBuilder interface {
	With(updates ...util.PropertyUpdate) TestDataBuilder
	Child() TestDataBuilder
	AndChild() TestDataBuilder
	Parent() TestDataBuilder
}

type testDataBuilder struct {
	db     util.DataBuilder
	parent *testDataBuilder
}

func (tdb *testDataBuilder) With(updates ...util.PropertyUpdate) TestDataBuilder {
	tdb.db.With(updates...)
	return tdb
}

// Child returns a builder for a new child of the receiver.
func (tdb *testDataBuilder) Child() TestDataBuilder {
	return &testDataBuilder{
		db:     tdb.db.Child(),
		parent: tdb,
	}
}

// AndChild returns a builder for a new sibling of the receiver, or for a new
// child if the receiver is the root.
func (tdb *testDataBuilder) AndChild() TestDataBuilder {
	return tdb.Parent().Child()
}

// Parent returns the receiver's parent, or the receiver if it is the root.
func (tdb *testDataBuilder) Parent() TestDataBuilder {
	if tdb.parent == nil {
		return tdb
	}
	return tdb.parent
}

func dataOf(d any) (*util.Data, error) {
	switch v := d.(type) {
	case *util.DataResponseBuilder:
		return v.Data()
	case *util.Data:
		return v, nil
	default:
		return nil, fmt.Errorf("argument must be a *util.DataResponseBuilder or a *util.Data, got %T", d)
	}
}

// CompareDataResponses compares got and want, each of which must be a
// *util.DataResponseBuilder or a *util.Data, reporting any difference on t.
// Other problems are returned.
func CompareDataResponses(t *testing.T, got, want any) error {
	t.Helper()
	gotData, err := dataOf(got)
	if err != nil {
		return err
	}
	wantData, err := dataOf(want)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(wantData.PrettyPrint(), gotData.PrettyPrint()); diff != "" {
		t.Errorf("Got data %s, diff (-want, +got) %s", gotData.PrettyPrint(), diff)
	}
	return nil
}

func build(t *testing.T, drb *util.DataResponseBuilder, buildIf any) {
	t.Helper()
	db := drb.DataSeries(&util.DataSeriesRequest{})
	switch b := buildIf.(type) {
	case func(util.DataBuilder):
		b(db)
	case func(TestDataBuilder):
		b(&testDataBuilder{db: db})
	default:
		t.Fatalf("expected func(util.DataBuilder) or func(testutil.TestDataBuilder), got %T", buildIf)
	}
}

// CompareResponses compares the single-series responses built by buildGot
// and buildWant, each of which must be a func(util.DataBuilder) or a
// func(TestDataBuilder).
func CompareResponses(t *testing.T, buildGot, buildWant any) error {
	t.Helper()
	gotDrb, wantDrb := util.NewDataResponseBuilder(), util.NewDataResponseBuilder()
	build(t, gotDrb, buildGot)
	build(t, wantDrb, buildWant)
	return CompareDataResponses(t, gotDrb, wantDrb)
}
