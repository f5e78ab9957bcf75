package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
)

// newTable creates a table with standard styling that renders to w.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

// render prints v as YAML or hands w to the table writer.
func (a *app) render(w io.Writer, v interface{}, asTable func(table.Writer)) error {
	if a.output == outputYAML {
		return printYAML(w, v)
	}
	t := newTable(w)
	asTable(t)
	t.Render()
	return nil
}

func userTable(u *types.User) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Username", "Name", "URL"})
		t.AppendRow(table.Row{u.ID, u.Username, u.Name, u.URL})
	}
}

func postsTable(posts []*types.Post) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Title", "Status", "Published", "Tags", "URL"})
		for _, p := range posts {
			published := ""
			if p.PublishedAt != 0 {
				published = p.PublishedAt.Time().UTC().Format("2006-01-02")
			}
			t.AppendRow(table.Row{p.ID, p.Title, p.PublishStatus, published, strings.Join(p.Tags, ","), p.URL})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d posts", len(posts))})
	}
}

func publicationsTable(pubs []*types.Publication) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Name", "Description", "URL"})
		for _, p := range pubs {
			t.AppendRow(table.Row{p.ID, p.Name, p.Description, p.URL})
		}
	}
}

func contributorsTable(contributors []*types.Contributor) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"Publication", "User", "Role"})
		for _, c := range contributors {
			t.AppendRow(table.Row{c.PublicationID, c.UserID, c.Role})
		}
	}
}
