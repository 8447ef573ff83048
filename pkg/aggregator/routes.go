package aggregator

import (
	"strings"

	"github.com/umputun/logos/pkg/domain"
)

// ResolveCommand maps a chat command like "/war", "market" or "/tass@logos_bot" to a fetch target.
// Category names win over source names, source names match case-insensitively.
func ResolveCommand(cmd string, registry Registry) (domain.Target, bool) {
	cmd = normalizeCommand(cmd)
	if cmd == "" {
		return domain.Target{}, false
	}

	if c, err := domain.ParseCategory(cmd); err == nil {
		return domain.CategoryTarget(c), true
	}
	if src, ok := registry.Find(cmd); ok {
		return domain.SourceTarget(src.Name), true
	}
	return domain.Target{}, false
}

// IsHelpCommand reports whether cmd asks for the command list
func IsHelpCommand(cmd string) bool {
	switch normalizeCommand(cmd) {
	case "help", "start":
		return true
	}
	return false
}

// normalizeCommand drops the leading slash, bot mention and arguments, lowercases the rest
func normalizeCommand(cmd string) string {
	cmd = strings.TrimPrefix(strings.TrimSpace(cmd), "/")
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	if fields := strings.Fields(cmd); len(fields) > 0 {
		cmd = fields[0]
	}
	return strings.ToLower(cmd)
}
