// Package storage 实现本地目录形式的对象存储。
// 对象按 {slot}s/{slot}_{timestamp}.{ext} 的路径写入桶目录，并通过上传 URL 前缀公开访问。
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedAsset 在文件类型与槽位不匹配时返回
	ErrUnsupportedAsset = errors.New("unsupported asset")
	// ErrEmptyAsset 在上传内容为空时返回
	ErrEmptyAsset = errors.New("empty asset")
)

// Kind 描述槽位接受的文件类别
type Kind int

const (
	// KindImage 接受可解码的位图
	KindImage Kind = iota
	// KindDocument 接受 PDF 文档
	KindDocument
)

// MaxObjectSize 限制单个对象的字节数
const MaxObjectSize = 10 << 20

// Object 描述写入成功的对象
type Object struct {
	Bucket string
	Path   string
	URL    string
	Size   int64
}

// Bucket 是挂载在本地目录上的对象桶
type Bucket struct {
	name    string
	root    string
	baseURL string
	now     func() time.Time
}

// NewBucket 创建对象桶，root 为磁盘目录，baseURL 为对外访问前缀（如 /uploads）
func NewBucket(name, root, baseURL string) *Bucket {
	return &Bucket{
		name:    strings.TrimSpace(name),
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// SetClock 替换时间源，便于生成可预测的对象路径
func (b *Bucket) SetClock(now func() time.Time) {
	if now == nil {
		b.now = time.Now
		return
	}
	b.now = now
}

// Name 返回桶名
func (b *Bucket) Name() string {
	return b.name
}

// ObjectPath 生成对象在桶内的相对路径
func ObjectPath(slot, filename string, at time.Time) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%ss/%s_%d.%s", slot, slot, at.UnixMilli(), ext)
}

// Put 校验并写入对象，返回公开地址
func (b *Bucket) Put(ctx context.Context, slot, filename string, kind Kind, body io.Reader) (*Object, error) {
	slot = strings.ToLower(strings.TrimSpace(slot))
	if slot == "" {
		return nil, fmt.Errorf("%w: slot is required", ErrUnsupportedAsset)
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyAsset
	}
	if len(data) > MaxObjectSize {
		return nil, fmt.Errorf("%w: asset exceeds %d bytes", ErrUnsupportedAsset, MaxObjectSize)
	}
	if err := validate(kind, filename, data); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectPath := ObjectPath(slot, filename, b.now())
	fullPath := filepath.Join(b.root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("create bucket directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp object: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("publish object: %w", err)
	}

	return &Object{
		Bucket: b.name,
		Path:   objectPath,
		URL:    b.baseURL + "/" + objectPath,
		Size:   int64(len(data)),
	}, nil
}

func validate(kind Kind, filename string, data []byte) error {
	switch kind {
	case KindImage:
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%w: %s is not a supported image", ErrUnsupportedAsset, filepath.Base(filename))
		}
	case KindDocument:
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			return fmt.Errorf("%w: %s is not a PDF document", ErrUnsupportedAsset, filepath.Base(filename))
		}
	default:
		return fmt.Errorf("%w: unknown kind", ErrUnsupportedAsset)
	}
	return nil
}
