// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/penny-vault/fundview/analysis"
	"github.com/penny-vault/fundview/currency"
)

// DefaultWidth is the terminal word-wrap width.
const DefaultWidth = 100

// Format is an output representation of a report.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatTerminal, FormatMarkdown, FormatJSON, FormatHTML}

var ErrUnknownFormat = errors.New("unknown output format")

var (
	brandGreen = lipgloss.Color("#1A472A")
	lightGreen = lipgloss.Color("#2CA356")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(brandGreen).
			Padding(0, 2).
			MarginTop(1)

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lightGreen).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lightGreen).
			Padding(0, 1)
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatTerminal, nil
	}

	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Document is the JSON representation of a report.
type Document struct {
	Report *analysis.Report `json:"report"`
	Notice string           `json:"notice"`
	Charts []*BarChart      `json:"charts"`
}

// Renderer writes reports in any of the supported formats.
type Renderer struct {
	Formatter *currency.Formatter
	Width     int

	// Banner replaces the text-only Title at the top of terminal and HTML
	// output when set.
	Banner string
}

// NewRenderer returns a Renderer using the currency code and wrap width.
func NewRenderer(currencyCode string, width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}

	return &Renderer{
		Formatter: currency.New(currencyCode),
		Width:     width,
	}
}

// Render writes myReport to w in the requested format.
func (renderer *Renderer) Render(w io.Writer, myReport *analysis.Report, format Format) error {
	var (
		out string
		err error
	)

	switch format {
	case FormatTerminal, "":
		out, err = renderer.Terminal(myReport)
	case FormatMarkdown:
		out, err = Markdown(myReport, renderer.Formatter)
	case FormatJSON:
		return renderer.JSON(w, myReport)
	case FormatHTML:
		out, err = renderer.HTML(myReport)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}

// Terminal renders the report for a terminal: a lipgloss banner and scope
// notice followed by the markdown body rendered with glamour.
func (renderer *Renderer) Terminal(myReport *analysis.Report) (string, error) {
	body, err := markdown(myReport, renderer.Formatter, options{})
	if err != nil {
		return "", err
	}

	width := renderer.Width
	if width <= 0 {
		width = DefaultWidth
	}

	r, err := glamour.NewTermRenderer(
		// detect background color and pick either the default dark or light theme
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	out, err := r.Render(body)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderer.banner(),
		"",
		noticeStyle(myReport).Render(Notice(myReport)),
		out,
	), nil
}

// JSON writes the report, its scope notice and its charts as indented JSON.
func (renderer *Renderer) JSON(w io.Writer, myReport *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(Document{
		Report: myReport,
		Notice: Notice(myReport),
		Charts: Charts(myReport, renderer.Formatter),
	}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return nil
}

// HTML converts the markdown document into a standalone page. Chart headings
// carry the chart ID as their anchor.
func (renderer *Renderer) HTML(myReport *analysis.Report) (string, error) {
	body, err := markdown(myReport, renderer.Formatter, options{headingIDs: true, inlineNotice: true})
	if err != nil {
		return "", err
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAttribute()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting report to html: %w", err)
	}

	title := renderer.Banner
	if title == "" {
		title = Title
	}

	return fmt.Sprintf(htmlPage, html.EscapeString(myReport.Name), html.EscapeString(title), buf.String()), nil
}

const htmlPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Dashboard - %s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 0 auto; padding: 1rem; }
h1, h2, h3 { color: #1a472a; }
header { background-color: #1a472a; color: white; padding: 10px; border-radius: 5px; text-align: center; }
blockquote { border-left: 4px solid #2ca356; margin-left: 0; padding-left: 1rem; }
td:nth-child(2) { color: #2ca356; font-family: monospace; }
</style>
</head>
<body>
<header><pre>%s</pre></header>
%s
</body>
</html>
`

func (renderer *Renderer) banner() string {
	if renderer.Banner != "" {
		return bannerStyle.Render(renderer.Banner)
	}
	return bannerStyle.Render(Title)
}

func noticeStyle(myReport *analysis.Report) lipgloss.Style {
	if myReport.Scope == analysis.ScopeGeneral {
		return warningStyle
	}
	return successStyle
}

// LoadBanner reads the text banner at path. An empty path, a missing file or
// a read error yields the empty string, which selects the text-only Title;
// the latter two are logged as warnings.
func LoadBanner(path string, logger zerolog.Logger) string {
	if path == "" {
		return ""
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("FileName", path).Msg("could not load banner, using text header")
		return ""
	}

	return strings.TrimRight(string(content), "\r\n\t ")
}
