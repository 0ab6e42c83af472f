package stats

import (
	"errors"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/op/go-logging"
	statsd "gopkg.in/alexcesaro/statsd.v2"
)

var log = logging.MustGetLogger("stats")

type StatItem struct {
	Name  string
	Value int64
}

type source struct {
	module    string
	countable Countable
	tags      OptionStatTags
	interval  time.Duration

	skipped time.Duration
}

var (
	lock     sync.Mutex
	sources  []*source
	client   *statsd.Client
	hostname string
	running  bool
)

func init() {
	hostname, _ = os.Hostname()
}

func setHostname(name string) {
	lock.Lock()
	hostname = name
	lock.Unlock()
}

func setRemote(address string) error {
	c, err := statsd.New(
		statsd.Address(address),
		statsd.TagsFormat(statsd.InfluxDB),
		statsd.Tags("host", hostname),
	)
	if err != nil {
		return err
	}
	lock.Lock()
	client = c
	if !running {
		running = true
		go run()
	}
	lock.Unlock()
	log.Infof("statsd remote set to %s", address)
	return nil
}

func registerCountable(module string, countable Countable, opts ...StatsOption) error {
	source := &source{
		module:    module,
		countable: countable,
		tags:      OptionStatTags{},
		interval:  MinInterval,
	}
	for _, opt := range opts {
		if tags, ok := opt.(OptionStatTags); ok {
			for key, value := range tags {
				source.tags[key] = value
			}
		} else if interval, ok := opt.(OptionInterval); ok {
			source.interval = time.Duration(interval)
		}
	}
	if source.interval < MinInterval {
		source.interval = MinInterval
	}
	lock.Lock()
	defer lock.Unlock()
	for _, s := range sources {
		if s.countable == countable {
			return errors.New("countable registered twice")
		}
	}
	sources = append(sources, source)
	return nil
}

func deregisterCountable(countable Countable) {
	lock.Lock()
	defer lock.Unlock()
	for i, s := range sources {
		if s.countable == countable {
			sources = append(sources[:i], sources[i+1:]...)
			return
		}
	}
}

// counterItems通过statsd tag将计数结构体展开为条目列表，
// 仅处理导出的整数与浮点字段
func counterItems(counter interface{}) []StatItem {
	if counter == nil {
		return nil
	}
	value := reflect.ValueOf(counter)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	itemType := value.Type()
	items := make([]StatItem, 0, itemType.NumField())
	for i := 0; i < itemType.NumField(); i++ {
		field := itemType.Field(i)
		name := field.Tag.Get("statsd")
		if name == "" || field.PkgPath != "" {
			continue
		}
		switch value.Field(i).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			items = append(items, StatItem{name, value.Field(i).Int()})
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			items = append(items, StatItem{name, int64(value.Field(i).Uint())})
		case reflect.Float32, reflect.Float64:
			items = append(items, StatItem{name, int64(value.Field(i).Float())})
		}
	}
	return items
}

func flush(elapsed time.Duration) {
	lock.Lock()
	flushClient := client
	flushSources := make([]*source, len(sources))
	copy(flushSources, sources)
	lock.Unlock()

	for _, s := range flushSources {
		if s.skipped += elapsed; s.skipped < s.interval {
			continue
		}
		s.skipped = 0
		items := counterItems(s.countable.GetCounter())
		if flushClient == nil {
			continue
		}
		tags := make([]string, 0, len(s.tags)*2)
		for key, value := range s.tags {
			tags = append(tags, key, value)
		}
		c := flushClient.Clone(statsd.Prefix(s.module), statsd.Tags(tags...))
		for _, item := range items {
			c.Count(item.Name, item.Value)
		}
	}
}

func run() {
	for range time.NewTicker(MinInterval).C {
		flush(MinInterval)
	}
}
