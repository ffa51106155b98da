package service

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultKeyPrefix 默认条目引用的前缀，后接从 1 开始的序号
const DefaultKeyPrefix = "default-"

// Item 是列表区块中的一个条目：要么来自存储（带主键），要么来自默认内容（带默认键）
type Item[T any] struct {
	id     uint
	key    string
	Fields T
}

// Persisted 构造已存储的条目
func Persisted[T any](id uint, fields T) Item[T] {
	return Item[T]{id: id, Fields: fields}
}

// Defaulted 构造默认条目
func Defaulted[T any](key string, fields T) Item[T] {
	return Item[T]{key: key, Fields: fields}
}

// IsDefault 是否为默认条目
func (i Item[T]) IsDefault() bool {
	return i.key != ""
}

// ID 返回存储主键，默认条目返回 0
func (i Item[T]) ID() uint {
	return i.id
}

// Ref 返回条目在接口中的引用，默认条目为默认键，其余为主键
func (i Item[T]) Ref() string {
	if i.IsDefault() {
		return i.key
	}
	return strconv.FormatUint(uint64(i.id), 10)
}

func defaultKey(index int) string {
	return fmt.Sprintf("%s%d", DefaultKeyPrefix, index+1)
}

// Ref 是接口传入的条目引用
type Ref struct {
	ID         uint
	DefaultKey string
}

// IsDefault 是否指向默认条目
func (r Ref) IsDefault() bool {
	return r.DefaultKey != ""
}

func (r Ref) String() string {
	if r.IsDefault() {
		return r.DefaultKey
	}
	return strconv.FormatUint(uint64(r.ID), 10)
}

// IDRef 构造指向存储主键的引用
func IDRef(id uint) Ref {
	return Ref{ID: id}
}

// DefaultRef 构造指向默认条目的引用
func DefaultRef(key string) Ref {
	return Ref{DefaultKey: key}
}

// ParseRef 解析 "default-N" 或正整数主键
func ParseRef(raw string) (Ref, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, DefaultKeyPrefix) {
		n, err := strconv.Atoi(strings.TrimPrefix(trimmed, DefaultKeyPrefix))
		if err != nil || n <= 0 {
			return Ref{}, fmt.Errorf("%w: bad default key %q", ErrInvalidInput, raw)
		}
		return Ref{DefaultKey: trimmed}, nil
	}

	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		return Ref{}, fmt.Errorf("%w: bad item reference %q", ErrInvalidInput, raw)
	}
	return Ref{ID: uint(id)}, nil
}
