package atlas

import (
	"fmt"
	"strconv"
	"strings"

	"spine-mesh-baker/internal/logging"
)

// DefaultPageSize is used when a page omits its size property.
const DefaultPageSize = 2048

// Resolve derives page dimensions and region geometry from the first page
// with an image extension. Later pages are not examined.
//
// Regions without both xy and size (or a bounds property) are left out.
func Resolve(a *Atlas) Info {
	log := logging.Logger()
	info := Info{
		Width:   DefaultPageSize,
		Height:  DefaultPageSize,
		Regions: make(map[string]Region),
	}

	var page *Page
	for _, p := range a.Pages {
		if HasImageExt(p.Name) {
			page = p
			break
		}
	}
	if page == nil {
		log.Warn("atlas: no texture page found")
		return info
	}
	info.Page = page.Name
	if len(a.Pages) > 1 {
		log.Warn("atlas: only the first page is used", "page", page.Name, "pages", len(a.Pages))
	}

	if s, ok := page.Properties["size"]; ok {
		w, h, err := parsePair(s)
		if err != nil || w <= 0 || h <= 0 {
			log.Warn("atlas: bad page size, using default", "page", page.Name, "size", s)
		} else {
			info.Width, info.Height = w, h
		}
	}

	for _, name := range page.Order {
		props := page.Regions[name]
		r, ok, err := regionFromProps(name, props)
		if err != nil {
			log.Warn("atlas: skipping region", "region", name, "err", err)
			continue
		}
		if !ok {
			continue
		}
		info.Regions[name] = r
	}

	return info
}

func regionFromProps(name string, props map[string]string) (Region, bool, error) {
	r := Region{Name: name, Rotated: isRotated(props["rotate"])}

	xy, hasXY := props["xy"]
	size, hasSize := props["size"]
	if hasXY && hasSize {
		x, y, err := parsePair(xy)
		if err != nil {
			return r, false, fmt.Errorf("xy: %w", err)
		}
		w, h, err := parsePair(size)
		if err != nil {
			return r, false, fmt.Errorf("size: %w", err)
		}
		r.X, r.Y, r.Width, r.Height = x, y, w, h
		return r, true, nil
	}

	// Spine 4 writes a single bounds property instead of xy and size.
	if bounds, ok := props["bounds"]; ok {
		v, err := parseInts(bounds, 4)
		if err != nil {
			return r, false, fmt.Errorf("bounds: %w", err)
		}
		r.X, r.Y, r.Width, r.Height = v[0], v[1], v[2], v[3]
		return r, true, nil
	}

	return r, false, nil
}

func isRotated(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "true") || v == "90"
}

func parsePair(s string) (int, int, error) {
	v, err := parseInts(s, 2)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
