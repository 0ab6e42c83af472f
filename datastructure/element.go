package datastructure

import (
	"unsafe"
)

type p = unsafe.Pointer

type Element struct {
	Next  *Element
	Value interface{}
}
