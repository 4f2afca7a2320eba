package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed static/*
var static embed.FS

//go:embed templates/*.html
var templates embed.FS

// StaticFS 靜態資源
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}

// Templates 解析頁面模板
func Templates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"dict": dict,
	}
	return template.New("_root").Funcs(funcMap).ParseFS(templates, "templates/*.html")
}

// dict 在模板中組出傳給子模板的參數
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
