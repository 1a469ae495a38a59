package webpage

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/platepulse/backend/internal/domain"
)

// parseMenuLD extracts menu items from one JSON-LD block. The walk is
// deliberately lenient: schema.org menus appear as Menu, Restaurant with
// hasMenu, bare MenuSection lists, or @graph wrappers, with prices as
// strings or numbers. Anything unrecognized is skipped silently.
func parseMenuLD(block string, channel domain.Channel) []domain.MenuItem {
	var data interface{}
	if err := json.Unmarshal([]byte(block), &data); err != nil {
		return nil
	}

	var items []domain.MenuItem
	walkLD(data, "", channel, &items)
	return items
}

func walkLD(node interface{}, category string, channel domain.Channel, items *[]domain.MenuItem) {
	switch n := node.(type) {
	case []interface{}:
		for _, child := range n {
			walkLD(child, category, channel, items)
		}
	case map[string]interface{}:
		if hasLDType(n, "MenuItem") {
			if item, ok := menuItemFromLD(n, category, channel); ok {
				*items = append(*items, item)
			}
			return
		}
		if hasLDType(n, "MenuSection") {
			if name, ok := n["name"].(string); ok {
				category = name
			}
		}
		for _, key := range []string{"@graph", "hasMenu", "hasMenuSection", "hasMenuItem", "itemListElement"} {
			if child, ok := n[key]; ok {
				walkLD(child, category, channel, items)
			}
		}
	}
}

// hasLDType checks the @type field, which may be a string or a list
func hasLDType(node map[string]interface{}, want string) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == want
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// menuItemFromLD builds a MenuItem from a schema.org MenuItem node
func menuItemFromLD(node map[string]interface{}, category string, channel domain.Channel) (domain.MenuItem, bool) {
	name, _ := node["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.MenuItem{}, false
	}

	return domain.MenuItem{
		Name:     name,
		Price:    priceFromLD(node["offers"]),
		Category: category,
		Channel:  channel,
	}, true
}

// priceFromLD digs the price out of an offers node (object or list),
// tolerating string and numeric encodings. Missing prices become 0.
func priceFromLD(offers interface{}) float64 {
	switch o := offers.(type) {
	case []interface{}:
		for _, child := range o {
			if p := priceFromLD(child); p > 0 {
				return p
			}
		}
	case map[string]interface{}:
		switch p := o["price"].(type) {
		case float64:
			return p
		case string:
			cleaned := strings.TrimSpace(strings.TrimPrefix(p, "$"))
			if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return v
			}
		}
	}
	return 0
}
