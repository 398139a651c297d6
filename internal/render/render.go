// Package render turns the finalized rankings into the static digest page.
// It consumes the selector output read-only and performs no filtering or
// scoring of its own.
package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"vision/internal/rank"
	"vision/internal/roster"
	"vision/internal/video"
)

// Card is one rendered video tile.
type Card struct {
	ID      string
	Title   string
	Channel string
	Stat    string
	Comment string
}

// Tab is one selectable section of the page.
type Tab struct {
	ID     string
	Label  string
	Active bool
	Cards  []Card
}

type Page struct {
	Date string
	Tabs []Tab
}

// BuildPage lays out one tab per ranking view followed by one per roster
// zone, mirroring the digest's tab order.
func BuildPage(rankings []rank.Ranking, zones []roster.ZoneResult, now time.Time) Page {
	p := Page{Date: now.Format("2006-01-02")}

	for _, r := range rankings {
		tab := Tab{
			ID:    tabID(string(r.Bucket) + "-" + string(r.Metric)),
			Label: viewLabel(r.Bucket, r.Metric),
		}
		for _, item := range r.Items {
			tab.Cards = append(tab.Cards, Card{
				ID:      item.ID,
				Title:   item.Title,
				Channel: item.ChannelTitle,
				Stat:    statFor(item, r.Metric),
				Comment: item.TopComment,
			})
		}
		p.Tabs = append(p.Tabs, tab)
	}

	for _, z := range zones {
		tab := Tab{ID: tabID(z.Name), Label: titleCase(z.Name)}
		for _, v := range z.Videos {
			tab.Cards = append(tab.Cards, Card{
				ID:      v.ID,
				Title:   v.Title,
				Channel: v.ChannelTitle,
				Stat:    "watched " + formatCount(v.Views),
			})
		}
		p.Tabs = append(p.Tabs, tab)
	}

	if len(p.Tabs) > 0 {
		p.Tabs[0].Active = true
	}
	return p
}

func viewLabel(bucket video.Bucket, metric video.Metric) string {
	if bucket == video.BucketBreakout {
		return "Breakout"
	}

	var b string
	switch bucket {
	case video.BucketMusic:
		b = "Music"
	case video.BucketEntertainment:
		b = "Entertainment"
	default:
		b = "Trending"
	}

	switch metric {
	case video.MetricComments:
		return b + " / Most Discussed"
	case video.MetricReach:
		return b + " / Highest Reach"
	default:
		return b + " / Most Liked"
	}
}

func statFor(item video.Scored, metric video.Metric) string {
	switch metric {
	case video.MetricComments:
		return "comments " + formatCount(item.Comments)
	case video.MetricReach:
		return fmt.Sprintf("reach x%.1f", item.ReachRatio)
	default:
		return "likes " + formatCount(item.Likes)
	}
}

// formatCount compacts large counts the way the digest displays them.
func formatCount(n uint64) string {
	switch {
	case n > 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n > 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func tabID(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, s)
}

// WriteHTML renders the page to w.
func WriteHTML(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}

// WriteFile renders the page to path.
func WriteFile(path string, p Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create digest: %w", err)
	}
	defer f.Close()

	if err := WriteHTML(f, p); err != nil {
		return fmt.Errorf("render digest: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>VISION | Global Trends</title>
<style>
:root { --bg-color:#050505; --card-bg:#141414; --text-primary:#e5e5e5; --text-secondary:#a3a3a3; }
body { background:var(--bg-color); color:var(--text-primary); font-family:'Helvetica Neue',Helvetica,Arial,sans-serif; margin:0; padding:0; }
header { padding:60px 20px 40px; text-align:center; background:radial-gradient(circle at center,#1a1a1a 0%,#050505 100%); }
h1 { font-weight:700; letter-spacing:-1px; margin:0; font-size:2.5rem; color:#fff; }
.date { font-size:.85rem; color:var(--text-secondary); margin-top:10px; text-transform:uppercase; letter-spacing:2px; }
.nav-container { display:flex; justify-content:center; gap:40px; margin-bottom:40px; padding:15px 20px; border-bottom:1px solid #262626; position:sticky; top:0; background:rgba(5,5,5,.95); backdrop-filter:blur(12px); z-index:100; flex-wrap:wrap; }
.tab-btn { background:none; border:none; color:#666; font-size:1rem; padding:10px 0; cursor:pointer; font-weight:500; }
.tab-btn.active { color:#fff; }
.container { max-width:1600px; margin:0 auto; padding:0 40px 60px; min-height:80vh; }
.tab-content { display:none; }
.tab-content.active { display:block; }
.grid { display:grid; grid-template-columns:repeat(auto-fill,minmax(320px,1fr)); gap:40px 30px; }
.video-wrapper { position:relative; padding-bottom:56.25%; height:0; background:#000; border-radius:4px; }
.video-wrapper iframe { position:absolute; top:0; left:0; width:100%; height:100%; border:0; }
.info { padding:15px 0 0 0; }
.title { font-size:1rem; font-weight:500; line-height:1.4; margin-bottom:8px; color:#fff; }
.meta { display:flex; justify-content:space-between; font-size:.85rem; color:#888; }
.stat-highlight { color:#fff; font-weight:600; }
.comment { margin-top:8px; font-size:.8rem; color:var(--text-secondary); font-style:italic; }
</style>
</head>
<body>
<header>
<h1>VISION</h1>
<div class="date">{{.Date}} &bull; GLOBAL EDITION</div>
</header>
<nav class="nav-container">
{{range .Tabs}}<button class="tab-btn{{if .Active}} active{{end}}" onclick="openTab(event, '{{.ID}}')">{{.Label}}</button>
{{end}}</nav>
<div class="container">
{{range .Tabs}}<div id="{{.ID}}" class="tab-content{{if .Active}} active{{end}}"><div class="grid">
{{range .Cards}}<div class="card">
<div class="video-wrapper"><iframe src="https://www.youtube.com/embed/{{.ID}}" loading="lazy" allowfullscreen></iframe></div>
<div class="info">
<div class="title" title="{{.Title}}">{{.Title}}</div>
<div class="meta"><span>{{.Channel}}</span><span class="stat-highlight">{{.Stat}}</span></div>
{{if .Comment}}<div class="comment">&ldquo;{{.Comment}}&rdquo;</div>{{end}}
</div>
</div>
{{end}}</div></div>
{{end}}</div>
<script>
function openTab(evt, tabName) {
  var i, tabcontent, tablinks;
  tabcontent = document.getElementsByClassName("tab-content");
  for (i = 0; i < tabcontent.length; i++) { tabcontent[i].classList.remove("active"); }
  tablinks = document.getElementsByClassName("tab-btn");
  for (i = 0; i < tablinks.length; i++) { tablinks[i].classList.remove("active"); }
  document.getElementById(tabName).classList.add("active");
  evt.currentTarget.classList.add("active");
}
</script>
</body>
</html>
`))
