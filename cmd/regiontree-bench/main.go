package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"gitlab.x.lan/yunshan/regiontree"
	"gitlab.x.lan/yunshan/regiontree/logger"
	"gitlab.x.lan/yunshan/regiontree/regionset"
	"gitlab.x.lan/yunshan/regiontree/stats"
)

const (
	DEFAULT_FAST_PATH_SIZE = 64 * units.KiB
)

var (
	logLevel  string
	dimension int
	nRegions  int
	span      int64
	seed      int64
)

// 随机生成区域，每个维度的区间起点落在span内，长度在[100, 200)之间
func randomRegions(random *rand.Rand, dimension, count int, span int64) []regiontree.Region {
	regions := make([]regiontree.Region, 0, count)
	for i := 0; i < count; i++ {
		intervals := make([]regiontree.Interval, dimension)
		for d := 0; d < dimension; d++ {
			offset := random.Int63n(span)
			intervals[d] = regiontree.NewInterval(offset+random.Int63n(100), offset+100+random.Int63n(100))
		}
		regions = append(regions, regiontree.NewRegion(intervals...))
	}
	return regions
}

func randomPoint(random *rand.Rand, dimension int, span int64) []int64 {
	point := make([]int64, dimension)
	for d := 0; d < dimension; d++ {
		point[d] = random.Int63n(span + 200)
	}
	return point
}

func newTree(fastPathSize int) (*regiontree.Tree, error) {
	options := make([]regiontree.Option, 0, 1)
	if fastPathSize > 0 {
		options = append(options, regiontree.OptionFastPathSize(fastPathSize))
	}
	return regiontree.NewTree(dimension, options...)
}

func benchCommand() *cobra.Command {
	var (
		nQueries     int
		fastPathSize int
		check        bool
		statsdServer string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Build a random tree and measure query throughput",
		Run: func(cmd *cobra.Command, args []string) {
			tree, err := newTree(fastPathSize)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if statsdServer != "" {
				if err := stats.SetRemote(statsdServer); err != nil {
					fmt.Println(err)
					os.Exit(1)
				}
				stats.RegisterCountable("regiontree", tree, stats.OptionStatTags{"case": "bench"})
				defer stats.DeregisterCountable(tree)
			}

			var oracle *regionset.Set
			if check {
				oracle, _ = regionset.New(dimension)
			}
			random := rand.New(rand.NewSource(seed))
			totalStart := time.Now()
			for _, region := range randomRegions(random, dimension, nRegions, span) {
				tree.AddRegion(region)
				if check {
					oracle.AddRegion(region)
				}
			}
			fmt.Printf("add: %d regions in %v\n", nRegions, time.Since(totalStart))

			start := time.Now()
			tree.Rebuild()
			buildElapsed := time.Since(start)
			if sum := tree.SumBucketSizes(); sum != len(tree.AllRegions()) {
				fmt.Printf("bucket sizes sum to %d but %d regions were added\n", sum, len(tree.AllRegions()))
				os.Exit(1)
			}
			fmt.Printf("build: %d regions in %v\n", nRegions, buildElapsed)

			hits := 0
			start = time.Now()
			for i := 0; i < nQueries; i++ {
				point := randomPoint(random, dimension, span)
				found, err := tree.ContainsPoint(point)
				if err != nil {
					fmt.Println(err)
					os.Exit(1)
				}
				if found {
					hits++
				}
				if check {
					if expect, _ := oracle.ContainsPoint(point); expect != found {
						fmt.Printf("query %v returned %v, expected %v\n", point, found, expect)
						os.Exit(1)
					}
				}
			}
			queryElapsed := time.Since(start)
			firstHits, fastHits := tree.GetHitStatus()
			fmt.Printf("query: %d queries in %v, %.0f queries/s\n",
				nQueries, queryElapsed, float64(nQueries)/queryElapsed.Seconds())
			fmt.Printf("hits: %d, first path: %d, fast path: %d\n", hits, firstHits, fastHits)
			if check {
				fmt.Println("check: all queries match the reference set")
			}
			fmt.Printf("total: %s (%v)\n", units.HumanDuration(time.Since(totalStart)), time.Since(totalStart))
		},
	}
	cmd.Flags().IntVar(&nQueries, "queries", 100000, "number of random point queries")
	cmd.Flags().IntVar(&fastPathSize, "fast-path", DEFAULT_FAST_PATH_SIZE, "fast path cache capacity, 0 to disable")
	cmd.Flags().BoolVar(&check, "check", false, "verify every query against a reference set")
	cmd.Flags().StringVar(&statsdServer, "statsd", "", "statsd server address to report counters to")
	return cmd
}

func dumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Build a random tree and print its structure",
		Run: func(cmd *cobra.Command, args []string) {
			tree, err := newTree(0)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			random := rand.New(rand.NewSource(seed))
			for _, region := range randomRegions(random, dimension, nRegions, span) {
				tree.AddRegion(region)
			}
			tree.Rebuild()
			fmt.Print(tree.Dump())
		},
	}
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:   "regiontree-bench",
		Short: "Region Tree Benchmark Tool",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitConsoleLog(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "console log level")
	root.PersistentFlags().IntVarP(&dimension, "dimension", "d", 2, "number of dimensions")
	root.PersistentFlags().IntVarP(&nRegions, "regions", "n", 1000, "number of random regions")
	root.PersistentFlags().Int64Var(&span, "span", 10000, "coordinate span of random regions")
	root.PersistentFlags().Int64Var(&seed, "seed", 42, "random seed")
	root.AddCommand(benchCommand())
	root.AddCommand(dumpCommand())
	root.SetArgs(os.Args[1:])
	root.Execute()
}
