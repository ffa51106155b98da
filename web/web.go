// Package web 嵌入页面模板与静态资源，服务端二进制无需额外文件即可运行。
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates 解析全部页面模板，模板名为文件名（如 index.html）
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}

// StaticFS 返回挂载在 /static 下的文件系统
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// 嵌入路径在编译期固定，这里不会失败
		panic(err)
	}
	return sub
}
