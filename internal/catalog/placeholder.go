package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// categoryGradients maps menu categories to placeholder gradient colors.
var categoryGradients = map[string][2]string{
	"Пицца":   {"#FF6B6B", "#FF8E53"},
	"Бургеры": {"#FFA726", "#FB8C00"},
	"Суши":    {"#66BB6A", "#43A047"},
	"Паста":   {"#FFB74D", "#FFA726"},
	"Шашлык":  {"#E57373", "#EF5350"},
	"Салаты":  {"#81C784", "#66BB6A"},
	"Супы":    {"#FFD54F", "#FFCA28"},
	"Мясо":    {"#8D6E63", "#6D4C41"},
	"Выпечка": {"#FFB74D", "#FFA726"},
}

var defaultGradient = [2]string{"#9E9E9E", "#757575"}

// PlaceholderImage renders a gradient SVG data URI for dishes without a
// photo, colored by category so cards stay distinguishable.
func PlaceholderImage(category string, index int) string {
	colors, ok := categoryGradients[category]
	if !ok {
		colors = defaultGradient
	}
	gradientID := fmt.Sprintf("grad-%s-%d", category, index)

	svg := fmt.Sprintf(`<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:%s;stop-opacity:1" />
      <stop offset="100%%" style="stop-color:%s;stop-opacity:1" />
    </linearGradient>
  </defs>
  <rect width="400" height="300" fill="url(#%s)"/>
  <text x="50%%" y="50%%" font-family="Arial, sans-serif" font-size="24" font-weight="bold"
        fill="white" text-anchor="middle" dominant-baseline="middle" opacity="0.8">%s</text>
</svg>`, gradientID, colors[0], colors[1], gradientID, category)

	// query escaping keeps cyrillic categories intact in the data URI;
	// spaces must be %20, not +
	escaped := strings.ReplaceAll(url.QueryEscape(svg), "+", "%20")
	return "data:image/svg+xml;charset=utf-8," + escaped
}
