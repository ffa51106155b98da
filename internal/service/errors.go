package service

import "errors"

var (
	// ErrInvalidInput 必填字段缺失或取值不合法
	ErrInvalidInput = errors.New("invalid section input")
	// ErrItemNotFound 按主键找不到条目
	ErrItemNotFound = errors.New("section item not found")
	// ErrDefaultItemImmutable 默认条目不能单独删除
	ErrDefaultItemImmutable = errors.New("default item cannot be deleted")
	// ErrDefaultsSuperseded 编辑默认条目时存储中已经有记录，页面需要刷新
	ErrDefaultsSuperseded = errors.New("defaults already replaced by stored items")
	// ErrReorderDefaulted 区块仍处于默认状态时不允许保存排序
	ErrReorderDefaulted = errors.New("cannot reorder default items")
	// ErrOrderMismatch 提交的顺序与已存储的条目不一致
	ErrOrderMismatch = errors.New("order does not match stored items")
	// ErrUnknownAssetSlot 上传槽位不存在
	ErrUnknownAssetSlot = errors.New("unknown asset slot")
)
