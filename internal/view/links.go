package view

import (
	"regexp"
	"strings"

	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
)

var urlSchemePattern = regexp.MustCompile(`^https?://(www\.)?`)

// DisplayURL strips the scheme, a leading www. and one trailing slash.
func DisplayURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSuffix(urlSchemePattern.ReplaceAllString(trimmed, ""), "/")
}

// ResumeTarget describes the "download resume" control on the home section.
type ResumeTarget struct {
	Href string `json:"href"`
	// Download is false when the control opens the link for viewing.
	Download bool   `json:"download"`
	Filename string `json:"filename,omitempty"`
}

const bundledResumeName = "LiannGonzalesResume.pdf"

// Resume picks the resume target: an explicit link wins and is opened as a view,
// otherwise the uploaded file, otherwise the bundled document, both forced to download.
func Resume(about db.About) ResumeTarget {
	if link := strings.TrimSpace(about.ResumeLink); link != "" {
		return ResumeTarget{Href: link}
	}
	if file := strings.TrimSpace(about.ResumeFile); file != "" {
		return ResumeTarget{Href: file, Download: true, Filename: fileName(file)}
	}
	return ResumeTarget{Href: catalog.DefaultResumePath, Download: true, Filename: bundledResumeName}
}

func fileName(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	if ref == "" {
		return bundledResumeName
	}
	return ref
}

// ProjectCard is the rendered form of a project entry.
type ProjectCard struct {
	Ref         string
	Title       string
	Description string
	Image       string
	Category    string
	Href        string
	ComingSoon  bool
	Download    bool
}

// NewProjectCard resolves the image key and the link state of a project.
func NewProjectCard(ref string, project db.Project) ProjectCard {
	link := strings.TrimSpace(project.Link)
	comingSoon := link == "" || link == "#"
	card := ProjectCard{
		Ref:         ref,
		Title:       project.Title,
		Description: project.Description,
		Image:       catalog.ProjectImage(project.ImageURL),
		Category:    project.Category,
		ComingSoon:  comingSoon,
	}
	if !comingSoon {
		card.Href = link
		card.Download = project.IsDownload
	}
	return card
}

// CircularLetter is one rune of the rotating badge.
type CircularLetter struct {
	Char   string
	Rotate float64
}

// CircularText splits text into letters with their rotation in degrees.
func CircularText(text string) []CircularLetter {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := 360.0 / float64(len(runes))
	letters := make([]CircularLetter, 0, len(runes))
	for i, r := range runes {
		letters = append(letters, CircularLetter{Char: string(r), Rotate: step * float64(i)})
	}
	return letters
}
