package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/jrsteele09/go-barber-client/apiclient"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"money":  money,
	"when":   when,
	"status": statusLabel,
}

// parsePages builds one template per page file, each wrapped in the shared layout.
func parsePages() (map[string]*template.Template, error) {
	fsys := TemplateFilesFS()
	layout, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate)
	if err != nil {
		return nil, err
	}
	files, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := template.Must(layout.Clone()).ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		pages[file] = t
	}
	return pages, nil
}

func when(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("02/01/2006 15:04")
}

func statusLabel(id int) string {
	switch id {
	case apiclient.StatusPending:
		return "Pending"
	case apiclient.StatusConfirmed:
		return "Confirmed"
	case apiclient.StatusCompleted:
		return "Completed"
	case apiclient.StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}
