package services

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/conectarapak/conectar/internal/models"
)

const exportPrintedAtLayout = "02-01-2006 15:04"

// RenderResearchPrintDocument builds the minimal print-formatted document for
// a saved record, ready to hand to the host's print surface.
func RenderResearchPrintDocument(record models.SavedResearch, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}

	var builder strings.Builder
	builder.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n<meta charset=\"utf-8\">\n")
	builder.WriteString("<title>ConectarAPAK — Investigación guardada</title>\n")
	builder.WriteString("<style>body{font-family:serif;max-width:48rem;margin:2rem auto;line-height:1.5}h1{font-size:1.3rem}footer{margin-top:2rem;font-size:.8rem;color:#555}</style>\n")
	builder.WriteString("</head>\n<body>\n")

	builder.WriteString("<h1>")
	builder.WriteString(template.HTMLEscapeString(record.Query))
	builder.WriteString("</h1>\n")

	for _, paragraph := range strings.Split(record.Text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		builder.WriteString("<p>")
		builder.WriteString(template.HTMLEscapeString(paragraph))
		builder.WriteString("</p>\n")
	}

	if sources := printableSources(record.Sources); len(sources) > 0 {
		builder.WriteString("<h2>Fuentes</h2>\n<ol>\n")
		for _, source := range sources {
			builder.WriteString("<li>")
			builder.WriteString(source)
			builder.WriteString("</li>\n")
		}
		builder.WriteString("</ol>\n")
	}

	savedAt := time.UnixMilli(record.Timestamp).In(location)
	builder.WriteString(fmt.Sprintf("<footer>ConectarAPAK · guardado el %s</footer>\n", savedAt.Format(exportPrintedAtLayout)))
	builder.WriteString("</body>\n</html>\n")

	return builder.String()
}

func printableSources(sources []models.ResearchSource) []string {
	printable := make([]string, 0, len(sources))
	for _, source := range sources {
		if source.Web == nil {
			continue
		}
		title := strings.TrimSpace(source.Web.Title)
		uri := strings.TrimSpace(source.Web.URI)
		switch {
		case title != "" && uri != "":
			printable = append(printable, fmt.Sprintf("%s — %s", template.HTMLEscapeString(title), template.HTMLEscapeString(uri)))
		case uri != "":
			printable = append(printable, template.HTMLEscapeString(uri))
		case title != "":
			printable = append(printable, template.HTMLEscapeString(title))
		}
	}
	return printable
}
