package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/eventbus"
	"github.com/portfolio/internal/repository"
	"github.com/portfolio/internal/storage"
	"k8s.io/klog/v2"
)

// 资料区块可上传的槽位
const (
	AssetSlotFront  = "front"
	AssetSlotBack   = "back"
	AssetSlotResume = "resume"
)

// AssetStore 负责保存上传的文件并返回公开地址
type AssetStore interface {
	Put(ctx context.Context, slot, filename string, kind storage.Kind, body io.Reader) (*storage.Object, error)
}

// AboutService 维护首页与关于我区块的单例资料
type AboutService struct {
	section singletonSection[db.About]
	assets  AssetStore
	events  *eventbus.AboutEventBus
}

// NewAboutService 构造 AboutService，assets 与 events 可以为空
func NewAboutService(repo repository.SingletonRepository[db.About], assets AssetStore, events *eventbus.AboutEventBus) *AboutService {
	return &AboutService{
		section: singletonSection[db.About]{
			name:     "about",
			repo:     repo,
			defaults: catalog.About,
			merge:    MergeAbout,
		},
		assets: assets,
		events: events,
	}
}

// MergeAbout 按字段合并存储行与默认内容
func MergeAbout(stored, defaults db.About) db.About {
	return db.About{
		ID:           db.AboutRowID,
		Name:         pick(stored.Name, defaults.Name),
		TypedStrings: pickList(stored.TypedStrings, defaults.TypedStrings),
		CircularText: pick(stored.CircularText, defaults.CircularText),
		ResumeLink:   pick(stored.ResumeLink, defaults.ResumeLink),
		ResumeFile:   pick(stored.ResumeFile, defaults.ResumeFile),
		FrontImage:   pick(stored.FrontImage, defaults.FrontImage),
		BackImage:    pick(stored.BackImage, defaults.BackImage),
		Title:        pick(stored.Title, defaults.Title),
		Location:     pick(stored.Location, defaults.Location),
		Paragraph1:   pick(stored.Paragraph1, defaults.Paragraph1),
		Paragraph2:   pick(stored.Paragraph2, defaults.Paragraph2),
		Paragraph3:   pick(stored.Paragraph3, defaults.Paragraph3),
		Paragraph4:   pick(stored.Paragraph4, defaults.Paragraph4),
		UpdatedAt:    stored.UpdatedAt,
	}
}

// Resolve 返回当前应展示的资料
func (s *AboutService) Resolve(ctx context.Context) (Resolved[db.About], error) {
	return s.section.resolve(ctx)
}

// Save 以完整字段集覆盖单例行
func (s *AboutService) Save(ctx context.Context, input db.About) (db.About, error) {
	record := normalizeAbout(input)
	if err := s.section.upsert(ctx, &record); err != nil {
		return db.About{}, err
	}
	s.publish(ctx, record)
	return MergeAbout(record, catalog.About()), nil
}

// AttachAsset 上传文件并把地址写入对应字段
// 上传失败时不修改资料
func (s *AboutService) AttachAsset(ctx context.Context, slot, filename string, body io.Reader) (db.About, error) {
	kind, err := assetKind(slot)
	if err != nil {
		return db.About{}, err
	}
	if s.assets == nil {
		return db.About{}, fmt.Errorf("attach %s asset: storage not configured", slot)
	}

	current, err := s.Resolve(ctx)
	if err != nil {
		return db.About{}, err
	}

	object, err := s.assets.Put(ctx, slot, filename, kind, body)
	if err != nil {
		return db.About{}, fmt.Errorf("upload %s asset: %w", slot, err)
	}
	klog.V(2).Infof("资料 %s 文件已上传到 %s/%s", slot, object.Bucket, object.Path)

	record := current.Value
	switch slot {
	case AssetSlotFront:
		record.FrontImage = object.URL
	case AssetSlotBack:
		record.BackImage = object.URL
	case AssetSlotResume:
		record.ResumeFile = object.URL
	}
	return s.Save(ctx, record)
}

func (s *AboutService) publish(ctx context.Context, record db.About) {
	if s.events == nil {
		return
	}
	event := eventbus.AboutEvent{Type: eventbus.AboutUpdated, About: record}
	if err := s.events.Publish(ctx, eventbus.AboutUpdated, event); err != nil {
		klog.Warningf("推送资料更新失败: %v", err)
	}
}

func assetKind(slot string) (storage.Kind, error) {
	switch slot {
	case AssetSlotFront, AssetSlotBack:
		return storage.KindImage, nil
	case AssetSlotResume:
		return storage.KindDocument, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAssetSlot, slot)
	}
}

func normalizeAbout(input db.About) db.About {
	return db.About{
		ID:           db.AboutRowID,
		Name:         strings.TrimSpace(input.Name),
		TypedStrings: trimLines(input.TypedStrings),
		CircularText: strings.TrimSpace(input.CircularText),
		ResumeLink:   strings.TrimSpace(input.ResumeLink),
		ResumeFile:   strings.TrimSpace(input.ResumeFile),
		FrontImage:   strings.TrimSpace(input.FrontImage),
		BackImage:    strings.TrimSpace(input.BackImage),
		Title:        strings.TrimSpace(input.Title),
		Location:     strings.TrimSpace(input.Location),
		Paragraph1:   strings.TrimSpace(input.Paragraph1),
		Paragraph2:   strings.TrimSpace(input.Paragraph2),
		Paragraph3:   strings.TrimSpace(input.Paragraph3),
		Paragraph4:   strings.TrimSpace(input.Paragraph4),
	}
}
