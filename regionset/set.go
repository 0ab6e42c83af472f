/**
 * 基于bitarray的区域集合，用于对单点命中查询做逐维求交，
 * 实现简单直接，适合作为对照实现或小规模场景
 */
package regionset

import (
	"errors"
	"sync"

	"github.com/Workiva/go-datastructures/bitarray"

	"gitlab.x.lan/yunshan/regiontree"
)

var (
	InvalidDimension       = errors.New("dimension must be positive")
	InsufficientDimensions = errors.New("region or point dimensions mismatch")
	EmptySetError          = errors.New("set has no regions")
)

type Set struct {
	dimension int
	regions   []regiontree.Region
}

func New(dimension int) (*Set, error) {
	if dimension <= 0 {
		return nil, InvalidDimension
	}
	return &Set{dimension: dimension}, nil
}

func (s *Set) AddRegion(region regiontree.Region) error {
	if len(region) != s.dimension {
		return InsufficientDimensions
	}
	s.regions = append(s.regions, region)
	return nil
}

func (s *Set) Size() int {
	return len(s.regions)
}

// 每个维度生成一个候选bitarray，包含该维度区间覆盖坐标的所有区域下标
func (s *Set) candidates(d int, coordinate int64) bitarray.BitArray {
	bits := bitarray.NewSparseBitArray()
	for i, region := range s.regions {
		if region[d].Contains(coordinate) {
			bits.SetBit(uint64(i))
		}
	}
	return bits
}

func (s *Set) matchingBits(point []int64) (bitarray.BitArray, error) {
	if len(point) != s.dimension {
		return nil, InsufficientDimensions
	}
	if len(s.regions) == 0 {
		return nil, EmptySetError
	}

	wg := sync.WaitGroup{}
	wg.Add(s.dimension)
	results := make([]bitarray.BitArray, s.dimension)
	for d := 0; d < s.dimension; d++ {
		go func(d int) {
			results[d] = s.candidates(d, point[d])
			wg.Done()
		}(d)
	}
	wg.Wait()
	indexBitSet := results[0]
	for d := 1; d < s.dimension; d++ {
		indexBitSet = indexBitSet.And(results[d])
	}
	return indexBitSet, nil
}

func (s *Set) MatchingRegions(point []int64) ([]regiontree.Region, error) {
	indexBitSet, err := s.matchingBits(point)
	if err != nil {
		return nil, err
	}
	regions := make([]regiontree.Region, 0, len(s.regions))
	for iterator := indexBitSet.Blocks(); iterator.Next(); {
		blockIndex, block := iterator.Value()
		for i := uint64(0); i < 64; i++ {
			if 1<<i&block == 0 {
				continue
			}
			regions = append(regions, s.regions[blockIndex*64+i])
		}
	}
	return regions, nil
}

func (s *Set) ContainsPoint(point []int64) (bool, error) {
	indexBitSet, err := s.matchingBits(point)
	if err != nil {
		return false, err
	}
	iterator := indexBitSet.Blocks()
	for iterator.Next() {
		if _, block := iterator.Value(); block != 0 {
			return true, nil
		}
	}
	return false, nil
}
