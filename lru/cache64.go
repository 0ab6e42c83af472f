package lru

import (
	"container/list"
)

type entry64 struct {
	key   uint64
	value interface{}
}

// Cache64是key为uint64的LRU缓存，注意：不是线程安全的
type Cache64 struct {
	capacity int
	lruList  *list.List
	cache    map[uint64]*list.Element
}

func NewCache64(capacity int) *Cache64 {
	return &Cache64{
		capacity: capacity,
		lruList:  list.New(),
		cache:    make(map[uint64]*list.Element, capacity),
	}
}

func (c *Cache64) Add(key uint64, value interface{}) {
	if element, found := c.cache[key]; found {
		c.lruList.MoveToFront(element)
		element.Value.(*entry64).value = value
		return
	}
	c.cache[key] = c.lruList.PushFront(&entry64{key, value})
	if c.lruList.Len() > c.capacity {
		c.removeOldest()
	}
}

func (c *Cache64) Get(key uint64) (interface{}, bool) {
	if element, found := c.cache[key]; found {
		c.lruList.MoveToFront(element)
		return element.Value.(*entry64).value, true
	}
	return nil, false
}

// Peek不更新LRU顺序
func (c *Cache64) Peek(key uint64) (interface{}, bool) {
	if element, found := c.cache[key]; found {
		return element.Value.(*entry64).value, true
	}
	return nil, false
}

func (c *Cache64) Remove(key uint64) {
	if element, found := c.cache[key]; found {
		c.deleteElement(element)
	}
}

func (c *Cache64) removeOldest() {
	if element := c.lruList.Back(); element != nil {
		c.deleteElement(element)
	}
}

func (c *Cache64) deleteElement(element *list.Element) {
	c.lruList.Remove(element)
	delete(c.cache, element.Value.(*entry64).key)
}

func (c *Cache64) Len() int {
	return c.lruList.Len()
}

func (c *Cache64) Clear() {
	c.lruList.Init()
	c.cache = make(map[uint64]*list.Element, c.capacity)
}

// Walk按访问新旧顺序遍历缓存
func (c *Cache64) Walk(callback func(key uint64, value interface{})) {
	for element := c.lruList.Front(); element != nil; element = element.Next() {
		entry := element.Value.(*entry64)
		callback(entry.key, entry.value)
	}
}
