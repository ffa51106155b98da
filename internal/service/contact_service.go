package service

import (
	"context"
	"strings"

	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/repository"
)

// ContactService 维护联系区块
type ContactService struct {
	section singletonSection[db.Contact]
}

// NewContactService 构造 ContactService
func NewContactService(repo repository.SingletonRepository[db.Contact]) *ContactService {
	return &ContactService{section: singletonSection[db.Contact]{
		name:     "contact",
		repo:     repo,
		defaults: catalog.Contact,
		merge:    MergeContact,
	}}
}

// MergeContact 按字段合并存储行与默认内容
func MergeContact(stored, defaults db.Contact) db.Contact {
	return db.Contact{
		ID:                 db.ContactRowID,
		SectionTitle:       pick(stored.SectionTitle, defaults.SectionTitle),
		SectionDescription: pick(stored.SectionDescription, defaults.SectionDescription),
		Email:              pick(stored.Email, defaults.Email),
		GithubURL:          pick(stored.GithubURL, defaults.GithubURL),
		BehanceURL:         pick(stored.BehanceURL, defaults.BehanceURL),
		UpdatedAt:          stored.UpdatedAt,
	}
}

// Resolve 返回当前应展示的联系信息
func (s *ContactService) Resolve(ctx context.Context) (Resolved[db.Contact], error) {
	return s.section.resolve(ctx)
}

// Save 以完整字段集覆盖单例行
func (s *ContactService) Save(ctx context.Context, input db.Contact) (db.Contact, error) {
	record := db.Contact{
		ID:                 db.ContactRowID,
		SectionTitle:       strings.TrimSpace(input.SectionTitle),
		SectionDescription: strings.TrimSpace(input.SectionDescription),
		Email:              strings.TrimSpace(input.Email),
		GithubURL:          strings.TrimSpace(input.GithubURL),
		BehanceURL:         strings.TrimSpace(input.BehanceURL),
	}
	if err := s.section.upsert(ctx, &record); err != nil {
		return db.Contact{}, err
	}
	return MergeContact(record, catalog.Contact()), nil
}
