// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup inspects generated HTML fragments: it counts block-level
// elements for conversion summaries and verifies that container tags are
// properly paired.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/docx2html/pkg/types"
)

// ErrUnbalanced is returned by Check when a closing tag has no matching
// open tag or an element is left open at the end of the fragment.
var ErrUnbalanced = errors.New("unbalanced markup")

// tracked lists the elements whose pairing is verified. Inline text may
// contain arbitrary tags (text is not escaped), so only the structure the
// converter emits is checked.
var tracked = map[string]bool{
	"h1": true, "h2": true, "p": true, "strong": true,
	"ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true,
}

// element is an open element on the inspection stack.
type element struct {
	name string

	// Paragraph bookkeeping for FAQ detection.
	strongs  int
	loose    bool // text outside <strong>
	children int
}

// Inspect tokenizes fragment and counts its block-level elements. A <p>
// whose entire content is a single <strong> element is counted as an FAQ
// question in addition to being counted as a paragraph.
func Inspect(fragment string) (types.MarkupStats, error) {
	var stats types.MarkupStats
	err := walk(fragment, func(ev event) {
		if ev.end {
			if ev.name == "p" && ev.el.strongs == 1 && ev.el.children == 1 && !ev.el.loose {
				stats.FAQs++
			}
			return
		}
		switch ev.name {
		case "h1", "h2":
			stats.Headings++
		case "p":
			stats.Paragraphs++
		case "ul", "ol":
			stats.Lists++
		case "li":
			stats.ListItems++
		case "table":
			stats.Tables++
		}
	})
	return stats, err
}

// Check verifies that every tracked element is closed in the right order
// and that no list item appears outside a list.
func Check(fragment string) error {
	var listErr error
	err := walk(fragment, func(ev event) {
		if listErr != nil || ev.end || ev.name != "li" {
			return
		}
		if ev.parent != "ul" && ev.parent != "ol" {
			listErr = fmt.Errorf("%w: <li> outside a list (parent %q)", ErrUnbalanced, ev.parent)
		}
	})
	if err != nil {
		return err
	}
	return listErr
}

type event struct {
	name   string
	end    bool
	parent string
	el     *element
}

// walk drives the tokenizer, maintaining a stack of tracked elements and
// calling fn on every tracked start and end tag.
func walk(fragment string, fn func(event)) error {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var stack []*element

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1].name
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("tokenizing markup: %w", err)
			}
			if len(stack) > 0 {
				return fmt.Errorf("%w: <%s> not closed", ErrUnbalanced, stack[len(stack)-1].name)
			}
			return nil

		case html.TextToken:
			if len(stack) > 0 && strings.TrimSpace(string(z.Text())) != "" {
				top := stack[len(stack)-1]
				if top.name == "p" {
					top.loose = true
				}
			}

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !tracked[tag] {
				continue
			}
			el := &element{name: tag}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.children++
				if tag == "strong" {
					top.strongs++
				}
			}
			fn(event{name: tag, parent: parent(), el: el})
			stack = append(stack, el)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !tracked[tag] {
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1].name != tag {
				return fmt.Errorf("%w: </%s> without matching <%s>", ErrUnbalanced, tag, tag)
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			fn(event{name: tag, end: true, parent: parent(), el: el})
		}
	}
}
