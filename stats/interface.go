package stats

import (
	"bytes"
	"time"
)

var (
	MinInterval = time.Second * 10
)

type StatsOption = interface{}

type OptionStatTags map[string]string
type OptionInterval time.Duration

func (t *OptionStatTags) String() string {
	if len(*t) == 0 {
		return "{}"
	}
	var strBuf bytes.Buffer
	strBuf.WriteString("{")
	for key, value := range *t {
		strBuf.WriteString(key + ": " + value + ", ")
	}
	strBuf.Truncate(strBuf.Len() - 2)
	return strBuf.String() + "}"
}

type Countable interface {
	// needs to be thread-safe, clear is required after read
	GetCounter() interface{}
}

// 限定stats的最少interval，也就是不论注册Countable时
// 指定的Interval是多少，只要比此值低就优先使用此值
func SetMinInterval(interval time.Duration) {
	MinInterval = interval
}

// 指定statsd远程服务器地址，形如"127.0.0.1:8125"，
// 设置成功后开始周期性上报已注册Countable的计数
func SetRemote(address string) error {
	return setRemote(address)
}

func SetHostname(name string) {
	setHostname(name)
}

func RegisterCountable(module string, countable Countable, opts ...StatsOption) error {
	return registerCountable(module, countable, opts...)
}

func DeregisterCountable(countable Countable) {
	deregisterCountable(countable)
}
