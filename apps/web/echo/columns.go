package echoweb

import (
	"fmt"
	"html"
	"html/template"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/volatiletech/null/v8"
)

const missing = "—"

var linkPolicy = newLinkPolicy()

func newLinkPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// link renders a URL as an anchor. Unsafe URLs lose their href and render as text.
func link(u null.String) interface{} {
	if u.String == "" {
		return missing
	}
	a := fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(u.String), html.EscapeString(u.String))
	return template.HTML(linkPolicy.Sanitize(a))
}

// money renders an amount with thousands separators.
func money(f null.Float64) interface{} {
	if !f.Valid {
		return missing
	}
	return humanize.Commaf(f.Float64)
}

// rank renders "#N", or "—" for a missing or zero rank.
func rank(r null.Int) interface{} {
	if r.Int == 0 {
		return missing
	}
	return fmt.Sprintf("#%d", r.Int)
}

func badge(label, variant string) interface{} {
	return template.HTML(fmt.Sprintf(`<span class="badge %s">%s</span>`, variant, html.EscapeString(label)))
}
