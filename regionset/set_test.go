package regionset

import (
	"math/rand"
	"testing"

	"gitlab.x.lan/yunshan/regiontree"
)

func TestNewInvalidDimension(t *testing.T) {
	if _, err := New(0); err != InvalidDimension {
		t.Error("zero dimension should be rejected")
	}
	if _, err := New(-1); err != InvalidDimension {
		t.Error("negative dimension should be rejected")
	}
}

func TestDimensionMismatch(t *testing.T) {
	set, _ := New(2)
	if err := set.AddRegion(regiontree.NewRegion(regiontree.NewInterval(0, 1))); err != InsufficientDimensions {
		t.Error("region with wrong dimensions should be rejected")
	}
	set.AddRegion(regiontree.NewRegion(regiontree.NewInterval(0, 1), regiontree.NewInterval(0, 1)))
	if _, err := set.ContainsPoint([]int64{0}); err != InsufficientDimensions {
		t.Error("point with wrong dimensions should be rejected")
	}
}

func TestEmptySet(t *testing.T) {
	set, _ := New(1)
	if _, err := set.ContainsPoint([]int64{0}); err != EmptySetError {
		t.Error("query on empty set should fail")
	}
}

func TestContainsPoint(t *testing.T) {
	set, _ := New(2)
	set.AddRegion(regiontree.NewRegion(regiontree.NewInterval(0, 10), regiontree.NewInterval(0, 10)))
	set.AddRegion(regiontree.NewRegion(regiontree.NewInterval(20, 30), regiontree.NewInterval(20, 30)))
	for _, query := range []struct {
		point  []int64
		expect bool
	}{
		{[]int64{5, 5}, true},
		{[]int64{10, 10}, true},
		{[]int64{11, 10}, false},
		{[]int64{5, 25}, false},
		{[]int64{25, 25}, true},
		{[]int64{31, 25}, false},
	} {
		if found, err := set.ContainsPoint(query.point); err != nil || found != query.expect {
			t.Errorf("query %v expects %v, got %v (%v)", query.point, query.expect, found, err)
		}
	}
}

func TestMatchingRegions(t *testing.T) {
	set, _ := New(1)
	for i := int64(0); i < 100; i++ {
		set.AddRegion(regiontree.NewRegion(regiontree.NewInterval(i, i+10)))
	}
	regions, err := set.MatchingRegions([]int64{50})
	if err != nil {
		t.Error(err)
	}
	if len(regions) != 11 {
		t.Errorf("expect 11 overlapping regions, got %d", len(regions))
	}
	for _, region := range regions {
		if !region.Contains([]int64{50}) {
			t.Errorf("region %v does not contain the point", region)
		}
	}
}

func TestAgainstLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	set, _ := New(3)
	regions := make([]regiontree.Region, 0, 500)
	for i := 0; i < 500; i++ {
		intervals := make([]regiontree.Interval, 3)
		for d := 0; d < 3; d++ {
			left := random.Int63n(10000)
			intervals[d] = regiontree.NewInterval(left, left+random.Int63n(100))
		}
		region := regiontree.NewRegion(intervals...)
		regions = append(regions, region)
		set.AddRegion(region)
	}
	for i := 0; i < 10000; i++ {
		point := []int64{random.Int63n(10000), random.Int63n(10000), random.Int63n(10000)}
		expect := false
		for _, region := range regions {
			if region.Contains(point) {
				expect = true
				break
			}
		}
		if found, err := set.ContainsPoint(point); err != nil || found != expect {
			t.Fatalf("query %v expects %v, got %v (%v)", point, expect, found, err)
		}
	}
}
