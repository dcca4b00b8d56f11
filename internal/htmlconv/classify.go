// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlconv

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docx2html/pkg/types"
)

// RoleKind is the structural role of a paragraph.
type RoleKind int

const (
	RolePlain RoleKind = iota
	RoleHeading1
	RoleHeading2
	RoleList
	RoleFAQ
)

func (k RoleKind) String() string {
	switch k {
	case RoleHeading1:
		return "heading1"
	case RoleHeading2:
		return "heading2"
	case RoleList:
		return "list"
	case RoleFAQ:
		return "faq"
	default:
		return "plain"
	}
}

// Role is the classification of one paragraph. List is set only when
// Kind is RoleList.
type Role struct {
	Kind RoleKind
	List types.ListKind
}

// Recognised heading style names.
const (
	styleHeading1 = "Heading 1"
	styleHeading2 = "Heading 2"
)

var (
	numberedQuestion = regexp.MustCompile(`^\d+\.\s`)
	numericLabel     = regexp.MustCompile(`^\d+\.?$`)
)

// Classifier assigns structural roles to paragraphs under a fixed pair of
// policies. The zero value uses the bold FAQ heuristic and distinct list
// kinds. A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	faq  types.FAQPolicy
	list types.ListPolicy
}

// NewClassifier returns a classifier for the given policies. Empty values
// select the defaults; unknown values are rejected.
func NewClassifier(faq types.FAQPolicy, list types.ListPolicy) (Classifier, error) {
	switch faq {
	case "":
		faq = types.FAQPolicyBold
	case types.FAQPolicyBold, types.FAQPolicyNumbered:
	default:
		return Classifier{}, fmt.Errorf("unsupported FAQ policy %q: use bold or numbered", faq)
	}
	switch list {
	case "":
		list = types.ListPolicyDistinct
	case types.ListPolicyDistinct, types.ListPolicyCollapse:
	default:
		return Classifier{}, fmt.Errorf("unsupported list policy %q: use distinct or collapse", list)
	}
	return Classifier{faq: faq, list: list}, nil
}

// FAQPolicy reports the active FAQ heuristic.
func (c Classifier) FAQPolicy() types.FAQPolicy {
	if c.faq == "" {
		return types.FAQPolicyBold
	}
	return c.faq
}

// ListPolicy reports the active list policy.
func (c Classifier) ListPolicy() types.ListPolicy {
	if c.list == "" {
		return types.ListPolicyDistinct
	}
	return c.list
}

// Classify returns the role of p. The checks run in a fixed order and the
// first match wins: heading style, list metadata, FAQ question, plain.
// Callers drop blank paragraphs before classifying.
func (c Classifier) Classify(p types.Paragraph) Role {
	switch p.Style {
	case styleHeading1:
		return Role{Kind: RoleHeading1}
	case styleHeading2:
		return Role{Kind: RoleHeading2}
	}

	if p.List != nil {
		return Role{Kind: RoleList, List: c.listKind(p.List)}
	}

	if c.isQuestion(p) {
		return Role{Kind: RoleFAQ}
	}
	return Role{Kind: RolePlain}
}

func (c Classifier) listKind(li *types.ListInfo) types.ListKind {
	if c.ListPolicy() == types.ListPolicyCollapse {
		return types.ListUnordered
	}
	switch li.Kind {
	case types.ListOrdered, types.ListUnordered:
		return li.Kind
	}
	// Kind was not resolved from numbering definitions.
	if li.NumID != "" {
		return types.ListOrdered
	}
	return types.ListUnordered
}

func (c Classifier) isQuestion(p types.Paragraph) bool {
	if c.FAQPolicy() == types.FAQPolicyNumbered {
		return numberedQuestion.MatchString(strings.TrimSpace(p.Text()))
	}
	return allBold(p.Runs)
}

// allBold reports whether every non-blank run is bold. The first non-blank
// run is skipped when it is a bare number label such as "3." so that
// "3." + bold question still qualifies. At least one bold run is required.
func allBold(runs []types.Run) bool {
	bold := 0
	first := true
	for _, r := range runs {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		if first {
			first = false
			if !r.Bold && numericLabel.MatchString(text) {
				continue
			}
		}
		if !r.Bold {
			return false
		}
		bold++
	}
	return bold > 0
}
