package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

var sheetPath = regexp.MustCompile(`^/spreadsheets/d/([A-Za-z0-9_-]+)(/.*)?$`)

// ExportURL rewrites a Google Sheets sharing link into the CSV export
// endpoint of the same sheet, keeping the tab (gid) when the link names one.
// Links that already point at an export, published CSV, or any other host
// are returned unchanged.
func ExportURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host != "docs.google.com" {
		return raw
	}

	m := sheetPath.FindStringSubmatch(u.Path)
	if m == nil {
		return raw
	}
	rest := m[2]
	if rest != "" && rest != "/" && !strings.HasPrefix(rest, "/edit") {
		return raw
	}

	gid := u.Query().Get("gid")
	if gid == "" {
		if frag, err := url.ParseQuery(u.Fragment); err == nil {
			gid = frag.Get("gid")
		}
	}

	q := url.Values{}
	q.Set("format", "csv")
	if gid != "" {
		q.Set("gid", gid)
	}

	out := url.URL{
		Scheme:   "https",
		Host:     u.Host,
		Path:     "/spreadsheets/d/" + m[1] + "/export",
		RawQuery: q.Encode(),
	}
	return out.String()
}
