// Package catalog 保存各内容区块的内置默认值。
// 数据库没有记录时前台与后台都展示这里的内容，每次调用都返回新的副本，调用方可以随意修改。
package catalog

import (
	"strings"

	"github.com/portfolio/internal/db"
)

// 内置静态资源路径，由 web 包嵌入并挂载在 /static 下
const (
	DefaultResumePath = "/static/assets/resume.pdf"
	DefaultFrontImage = "/static/assets/portrait-front.svg"
	DefaultBackImage  = "/static/assets/portrait-back.svg"
)

var projectImageAssets = map[string]string{
	"cherryTomato": "/static/assets/projects/cherry-tomato.svg",
	"frog":         "/static/assets/projects/pepe-frog.svg",
	"tmc":          "/static/assets/projects/tmc-logo.svg",
	"orgShirt":     "/static/assets/projects/org-shirt.svg",
	"logofolio":    "/static/assets/projects/logofolio.svg",
}

// ProjectImage 将符号键解析为内置素材路径，未知的值原样返回（视为外部地址）。
func ProjectImage(key string) string {
	trimmed := strings.TrimSpace(key)
	if asset, ok := projectImageAssets[trimmed]; ok {
		return asset
	}
	return trimmed
}

// ProjectImageKeys 返回可选的内置素材键。
func ProjectImageKeys() []string {
	return []string{"cherryTomato", "frog", "tmc", "orgShirt", "logofolio"}
}

// About 返回个人资料的默认值。
func About() db.About {
	return db.About{
		ID:   db.AboutRowID,
		Name: "Liann Gonzales",
		TypedStrings: []string{
			"I am an IT Student 💻",
			"I am a Graphic Designer 🎨",
			"I am a Front-End Developer 🖥️",
			"I am a Digital Artist ✏️",
			"I am a Gymnastics Coach 🤸‍♀️",
			"I am a UI/UX Designer 📱",
		},
		CircularText: "Information*Technology*",
		FrontImage:   DefaultFrontImage,
		BackImage:    DefaultBackImage,
		Title:        "IT professional and digital creative",
		Location:     "Bulacan, Philippines",
		Paragraph1:   "Hi, I'm <strong>Liann Gonzales</strong>, an aspiring <strong>IT professional </strong> and <strong>digital creative</strong> from <strong>Bulacan, Philippines</strong>. I'm passionate about technology, design, and continuous learning. My goal is to bridge creativity and functionality by crafting meaningful digital experiences that make everyday tasks simpler and more enjoyable.",
		Paragraph2:   "As an <strong>Information Technology student</strong>, I love exploring various fields such as <strong>UI/UX design</strong>, <strong>front-end web development</strong>, and <strong>software innovation</strong>. I enjoy turning ideas into real, interactive projects from designing clean, user-friendly interfaces to building systems that help people stay focused, organized, and productive.",
		Paragraph3:   "Outside academics, I express my creativity through <strong>graphic design</strong> and <strong> digital art</strong>. I've worked on logo designs, brand identities, and illustrations that reflect personality and purpose. My experience as a <strong> gymnastics coach</strong> and <strong>technical director</strong> has also strengthened my teamwork, leadership, and attention to detail qualities that I apply in both creative and technical work.",
		Paragraph4:   "I'm constantly learning, experimenting, and improving whether it's mastering new technologies, designing better user flows, or collaborating with others on innovative ideas. Ultimately, I aspire to become a <strong>versatile IT professional</strong> who blends technical knowledge with creative thinking to make a positive impact in the digital world.",
	}
}

// Contact 返回联系区块的默认值。
func Contact() db.Contact {
	return db.Contact{
		ID:                 db.ContactRowID,
		SectionTitle:       "Contact Me",
		SectionDescription: "I'd love to hear from you! Whether it's a question, collaboration, or just a hello — feel free to reach out.",
		Email:              "lianngonzales7@gmail.com",
		GithubURL:          "https://github.com/liaskyyy",
		BehanceURL:         "https://www.behance.net/lianngonza304c",
	}
}

// Experiences 返回默认经历列表。
func Experiences() []db.Experience {
	return []db.Experience{
		{
			Role:        "Freelance Graphic Designer",
			Period:      "2021 – 2022",
			Description: "Worked on logo design, branding, and illustration projects for various clients, focusing on visually appealing and impactful designs.",
		},
		{
			Role:        "Gymnastics Coach",
			Period:      "2020 – Present",
			Description: "Coaching young gymnasts in skills development, discipline, and performance, contributing to recreational and competitive training programs.",
			IsCurrently: true,
		},
		{
			Role:        "Technical Director",
			Period:      "2022 – Present",
			Description: "Managing technical aspects of gymnastics competitions, including scoring systems, event coordination, and smooth execution of events.",
			IsCurrently: true,
		},
	}
}

// Projects 返回默认作品列表。
func Projects() []db.Project {
	return []db.Project{
		{
			Title:       "Cherry Tomato App (Pomodoro)",
			Description: "Created the UI design for our capstone project — a Pomodoro timer app.",
			Link:        "https://www.figma.com/design/SUhaT4WfdsFubPVW3eOMw9/Cherry-Tomato?node-id=0-1&t=rLvc2qtTrgeSSMsW-1",
			ImageURL:    "cherryTomato",
			Category:    db.ProjectCategoryIT,
		},
		{
			Title:       "Pepe the Frog Mini Game",
			Description: "Developed a fun mini game using Godot, featuring Pepe the Frog as the main character.",
			Link:        "https://github.com/liaskyyy/pepethefroggame.git",
			ImageURL:    "frog",
			Category:    db.ProjectCategoryIT,
		},
		{
			Title:       "TMC Website",
			Description: "Developed a responsive website for a gymnastics academy.",
			Link:        "https://github.com/liaskyyy/tmc-website.git",
			ImageURL:    "tmc",
			Category:    db.ProjectCategoryIT,
		},
		{
			Title:       "JPSSITE ORG SHIRT",
			Description: "Designed the official organization shirt for JPSSITE.",
			Link:        "/static/assets/projects/org-shirt.svg",
			ImageURL:    "orgShirt",
			Category:    db.ProjectCategoryDesign,
			IsDownload:  true,
		},
		{
			Title:       "Logofolio",
			Description: "30-day logo challenge by Logocore.",
			Link:        "/static/assets/projects/logofolio.pdf",
			ImageURL:    "logofolio",
			Category:    db.ProjectCategoryDesign,
			IsDownload:  true,
		},
	}
}

const devicon = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/"

// Skills 返回默认技术栈，OrderIndex 按展示顺序从 0 递增。
func Skills() []db.Skill {
	skills := []db.Skill{
		{Title: "HTML", Src: devicon + "html5/html5-original.svg"},
		{Title: "CSS", Src: devicon + "css3/css3-original.svg"},
		{Title: "JavaScript", Src: devicon + "javascript/javascript-original.svg"},
		{Title: "React", Src: devicon + "react/react-original.svg"},
		{Title: "Python", Src: devicon + "python/python-original.svg"},
		{Title: "C++", Src: devicon + "cplusplus/cplusplus-original.svg"},
		{Title: "Java", Src: devicon + "java/java-original.svg"},
		{Title: "MySQL", Src: devicon + "mysql/mysql-original.svg"},
		{Title: "Node.js", Src: devicon + "nodejs/nodejs-original.svg"},
		{Title: "Figma", Src: devicon + "figma/figma-original.svg"},
		{Title: "Adobe Ai", Src: devicon + "illustrator/illustrator-plain.svg"},
		{Title: "Photoshop", Src: devicon + "photoshop/photoshop-plain.svg"},
		{Title: "InDesign", Src: devicon + "indesign/indesign-original.svg"},
		{Title: "MS Excel", Src: "https://upload.wikimedia.org/wikipedia/commons/3/34/Microsoft_Office_Excel_%282019%E2%80%93present%29.svg"},
		{Title: "MS Word", Src: "https://upload.wikimedia.org/wikipedia/commons/f/fd/Microsoft_Office_Word_%282019%E2%80%93present%29.svg"},
		{Title: "Canva", Src: devicon + "canva/canva-original.svg"},
		{Title: "UI/UX Design", Src: devicon + "xd/xd-original.svg"},
		{Title: "Git & GitHub", Src: devicon + "github/github-original.svg", InvertDark: true},
	}
	for i := range skills {
		skills[i].OrderIndex = i
	}
	return skills
}
