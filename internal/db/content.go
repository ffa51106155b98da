package db

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// AboutRowID 是个人资料单例行的固定主键。
	AboutRowID uint = 1
	// ContactRowID 是联系信息单例行的固定主键。
	ContactRowID uint = 1
)

// About 保存首页与关于我区块的资料，整张表只有一行
// 字段为空时由默认内容补齐，因此列允许为空
type About struct {
	ID           uint                        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string                      `gorm:"size:120" json:"name"`
	TypedStrings datatypes.JSONSlice[string] `json:"typed_strings"`
	CircularText string                      `gorm:"size:120" json:"circular_text"`
	ResumeLink   string                      `gorm:"size:500" json:"resume_link"`
	ResumeFile   string                      `gorm:"size:500" json:"resume_file"`
	FrontImage   string                      `gorm:"size:500" json:"front_image"`
	BackImage    string                      `gorm:"size:500" json:"back_image"`
	Title        string                      `gorm:"size:200" json:"title"`
	Location     string                      `gorm:"size:200" json:"location"`
	Paragraph1   string                      `gorm:"type:text" json:"paragraph1"`
	Paragraph2   string                      `gorm:"type:text" json:"paragraph2"`
	Paragraph3   string                      `gorm:"type:text" json:"paragraph3"`
	Paragraph4   string                      `gorm:"type:text" json:"paragraph4"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// TableName 返回自定义表名
func (About) TableName() string {
	return "about"
}

// Contact 保存联系区块的单例数据
type Contact struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	SectionTitle       string    `gorm:"size:200" json:"section_title"`
	SectionDescription string    `gorm:"type:text" json:"section_description"`
	Email              string    `gorm:"size:255" json:"email"`
	GithubURL          string    `gorm:"size:500" json:"github_url"`
	BehanceURL         string    `gorm:"size:500" json:"behance_url"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName 返回自定义表名
func (Contact) TableName() string {
	return "contact"
}

// Experience 表示一段工作或社团经历，Period 为自由文本
type Experience struct {
	gorm.Model
	Role        string `gorm:"size:200;not null"`
	Period      string `gorm:"size:120;not null"`
	Description string `gorm:"type:text;not null"`
	IsCurrently bool
}

// TableName 返回自定义表名
func (Experience) TableName() string {
	return "experiences"
}

const (
	// ProjectCategoryIT 表示开发类作品。
	ProjectCategoryIT = "it"
	// ProjectCategoryDesign 表示设计类作品。
	ProjectCategoryDesign = "design"
)

// Project 表示作品集中的一项
// ImageURL 可以是内置素材的符号键，也可以是外部地址
type Project struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Link        string `gorm:"size:500"`
	ImageURL    string `gorm:"size:500"`
	Category    string `gorm:"size:20;not null;default:it"`
	IsDownload  bool
}

// TableName 返回自定义表名
func (Project) TableName() string {
	return "projects"
}

// Skill 表示技术栈中的一项，OrderIndex 越小越靠前
type Skill struct {
	gorm.Model
	Title      string `gorm:"size:120;not null"`
	Src        string `gorm:"size:500;not null"`
	InvertDark bool
	OrderIndex int `gorm:"default:0;index"`
}

// TableName 返回自定义表名
func (Skill) TableName() string {
	return "skills"
}
