package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/aniket045123/craftmyresume/pkg/config"
)

// NewCORS lets the marketing site and any extra configured origins call the
// API from the browser. Wildcards are dropped because admin routes take
// bearer tokens; with no usable origin no CORS headers are sent at all.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	origins := AllowedOrigins(cfg)
	if len(origins) == 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	methods := "GET,POST,PATCH,DELETE,OPTIONS"
	if len(cfg.AllowedMethods) > 0 {
		methods = strings.Join(cfg.AllowedMethods, ",")
	}
	headers := "Origin,Content-Type,Accept,Authorization"
	if len(cfg.AllowedHeaders) > 0 {
		headers = strings.Join(cfg.AllowedHeaders, ",")
	}

	return fibercors.New(fibercors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    strings.Join(cfg.ExposeHeaders, ","),
		AllowCredentials: cfg.Credentials,
		MaxAge:           cfg.MaxAge,
	})
}

// AllowedOrigins returns the site origin followed by the extra origins,
// normalized to scheme://host[:port] and deduplicated.
func AllowedOrigins(cfg config.CORSConfig) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range append([]string{cfg.SiteURL}, cfg.AllowedOrigins...) {
		origin, ok := normalizeOrigin(raw)
		if !ok || seen[origin] {
			continue
		}
		seen[origin] = true
		out = append(out, origin)
	}
	return out
}

func normalizeOrigin(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "*") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), true
}
