// Package frame formats text for the Meshtastic frame budget: UTF-8-safe
// truncation, fixed-size pagination, and breadcrumb rendering.
package frame

import (
	"fmt"
	"strings"
)

// MaxPayloadBytes is the practical per-frame text budget on a Meshtastic
// direct message, leaving headroom for the LoRa MAC/application header.
const MaxPayloadBytes = 230

// ItemsPerPage is the number of list entries rendered per page in any
// paginated view (topics, threads, replies, inventory, …).
const ItemsPerPage = 5

// Truncate cuts s to at most maxBytes bytes without splitting a UTF-8
// rune, walking backward from maxBytes until it lands on a rune boundary.
func Truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// ellipsis is the 3-byte UTF-8 encoding of '…', appended by
// TruncateEllipsis when a string is cut short.
const ellipsis = "…"

// TruncateEllipsis is the frame-budget primitive used everywhere a
// message/title/content field must fit in maxBytes: the text it keeps
// never exceeds maxBytes, the result is always valid UTF-8, and an
// ellipsis is appended when the input didn't already fit (so the result
// may be up to maxBytes+len("…") bytes — the ellipsis itself is never
// counted against the original budget).
func TruncateEllipsis(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	return Truncate(s, maxBytes) + ellipsis
}

// Paginate returns the 1-based page of items (ItemsPerPage per page) and
// the total page count. An out-of-range page clamps to the last page
// (or returns an empty slice if there are no items).
func Paginate[T any](items []T, page int) ([]T, int) {
	total := (len(items) + ItemsPerPage - 1) / ItemsPerPage
	if total == 0 {
		return nil, 0
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * ItemsPerPage
	end := start + ItemsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

// Breadcrumb renders a '>'-joined navigation trail, truncated to fit the
// frame budget when the full trail would overflow it.
func Breadcrumb(parts ...string) string {
	trail := strings.Join(parts, " > ")
	return Truncate(trail, MaxPayloadBytes)
}

// PageFooter renders the conventional "page N/M" trailer shown under a
// paginated list.
func PageFooter(page, total int) string {
	if total <= 1 {
		return ""
	}
	return fmt.Sprintf("page %d/%d", page, total)
}
