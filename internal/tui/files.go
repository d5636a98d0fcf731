package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"gravemap/internal/poi"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() || !poi.Supported(e.Name()) {
			continue
		}
		name := e.Name()
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 && m.showSidebar {
		m.status = "no grave datasets in current directory"
	}
}

// loadPath replaces the grave set with the one stored at p. When the new set
// has a grave with the current destination's label, the route follows it.
func (m *Model) loadPath(p string) tea.Cmd {
	pts, err := poi.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		slog.Warn("dataset load failed", "action", "load_dataset", "path", p, "error", err)
		return nil
	}
	if len(pts) == 0 {
		m.status = "no points in " + filepath.Base(p)
		return nil
	}
	m.selPath = p
	m.dataset = filepath.Base(p)
	m.setPoints(pts)
	m.status = fmt.Sprintf("loaded: %s  graves=%d", m.dataset, len(pts))
	slog.Info("dataset loaded", "action", "load_dataset", "path", p, "points", len(pts))
	if m.showAttrs {
		m.refreshAttrs()
	}
	if m.dest == nil {
		return nil
	}
	if g, ok := poi.Find(pts, m.destLabel); ok && g.LatLng != *m.dest {
		return m.setDestination(g.LatLng, g.Label)
	}
	return nil
}
