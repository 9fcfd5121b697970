package condition

import (
	"strings"
)

// quoteJoin renders items as a comma-separated list of quoted values,
// the form used in outcome messages: 'a', 'b', 'c'.
func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}

// didNotFind builds a "did not find <noun> <items>" message, choosing the
// plural noun when more than one item is listed.
func didNotFind(singular, plural string, items []string) string {
	return itemsMessage("did not find", singular, plural, items)
}

// found builds a "found <noun> <items>" message.
func found(singular, plural string, items []string) string {
	return itemsMessage("found", singular, plural, items)
}

func itemsMessage(verb, singular, plural string, items []string) string {
	noun := singular
	if len(items) > 1 && plural != "" {
		noun = plural
	}
	if len(items) == 0 {
		return verb + " " + noun
	}
	return verb + " " + noun + " " + quoteJoin(items)
}
