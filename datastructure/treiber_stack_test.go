package datastructure

import (
	"sync"
	"testing"
)

func TestStackPushPop(t *testing.T) {
	stack := NewTreiberStack(4)
	stack.Push(1)
	stack.Push(2)
	if v := stack.Pop(); v != 2 {
		t.Error("Should be 2, actually", v)
	}
	if v := stack.Pop(); v != 1 {
		t.Error("Should be 1, actually", v)
	}
	if v := stack.Pop(); v != nil {
		t.Error("Should be nil, actually", v)
	}
}

func TestStackOverPush(t *testing.T) {
	stack := NewTreiberStack(2)
	stack.Push(1)
	stack.Push(2)
	stack.Push(3) // dropped
	count := 0
	for stack.Pop() != nil {
		count++
	}
	if count != 2 {
		t.Error("Should pop 2 elements, actually", count)
	}
}

func TestStackConcurrency(t *testing.T) {
	stack := NewTreiberStack(1024)
	wg := sync.WaitGroup{}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			for j := 0; j < 10000; j++ {
				stack.Push(j)
				stack.Pop()
			}
			wg.Done()
		}()
	}
	wg.Wait()
}
