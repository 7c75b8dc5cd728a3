package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/sysinfo"
)

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.WidgetFilter{
		Category:   catalog.Category(q.Get("category")),
		Difficulty: catalog.Difficulty(q.Get("difficulty")),
		Tag:        q.Get("tag"),
	}
	if f.Category != "" && !f.Category.Valid() {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown category %q", f.Category))
		return
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown difficulty %q", f.Difficulty))
		return
	}
	s.writeJSON(w, http.StatusOK, s.Query().FilterWidgets(f))
}

func (s *Server) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wd, ok := s.Query().GetWidgetByID(id)
	if !ok {
		s.notFound(w, id)
		return
	}
	s.writeJSON(w, http.StatusOK, wd)
}

func (s *Server) handleGetByPath(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")
	wd, ok := s.Query().GetWidgetByPath(path)
	if !ok {
		s.notFound(w, path)
		return
	}
	s.writeJSON(w, http.StatusOK, wd)
}

func (s *Server) handleRecommended(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	qs := s.Query()
	if _, ok := qs.GetWidgetByID(id); !ok {
		s.notFound(w, id)
		return
	}
	s.writeJSON(w, http.StatusOK, qs.GetRecommendedWidgets(id))
}

func (s *Server) handleFAQs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	locale := catalog.LocaleEN
	if l := r.URL.Query().Get("locale"); l != "" {
		locale = catalog.Locale(strings.ToLower(l))
	}
	if !locale.Valid() {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported locale %q", locale))
		return
	}

	qs := s.Query()
	if _, ok := qs.GetWidgetByID(id); !ok {
		s.notFound(w, id)
		return
	}
	s.writeJSON(w, http.StatusOK, qs.GetWidgetFAQs(id, locale))
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Query().ListCategories())
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	c := catalog.Category(chi.URLParam(r, "category"))
	if !c.Valid() {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown category %q", c))
		return
	}
	s.writeJSON(w, http.StatusOK, s.Query().GetWidgetsByCategory(c))
}

func (s *Server) handleListTags(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Query().ListTags())
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Query().GetWidgetsByTag(chi.URLParam(r, "tag")))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("query parameter q is required"))
		return
	}
	results := s.Query().SearchWidgets(q)
	if results == nil {
		results = []catalog.WidgetSearchResult{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleSystem(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, sysinfo.Collect())
}

func (s *Server) handleUserAgent(w http.ResponseWriter, r *http.Request) {
	ua := r.URL.Query().Get("ua")
	if ua == "" {
		ua = r.UserAgent()
	}
	s.writeJSON(w, http.StatusOK, sysinfo.ParseUserAgent(ua))
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// handleSitemap lists one location per widget per locale, in catalog order.
// Locations must be absolute, so without a configured base URL they are
// built from the request's scheme and host.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.baseURL
	if base == "" {
		base = requestBaseURL(r)
	}

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, wd := range s.Query().ListWidgets() {
		for _, l := range catalog.Locales {
			set.URLs = append(set.URLs, sitemapURL{Loc: fmt.Sprintf("%s/%s/%s", base, l, wd.Path)})
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		s.logger.Warn("failed to write sitemap", "error", err)
	}
}

// requestBaseURL returns scheme://host for r, trusting X-Forwarded-Proto
// when a proxy sets it to http or https.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
